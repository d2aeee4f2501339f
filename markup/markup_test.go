package markup

import (
	"strings"
	"testing"
)

func TestFixVideoIframes(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{
			name: "youtube without closing tag",
			in:   `<iframe src="https://www.youtube.com/embed/xyz">`,
			want: `[epfl_video url="https://www.youtube.com/embed/xyz"]`,
		},
		{
			name: "vimeo with content",
			in:   `<p>a</p><iframe width="560" src="https://player.vimeo.com/video/1">fallback</iframe><p>b</p>`,
			want: `<p>a</p>[epfl_video url="https://player.vimeo.com/video/1"]<p>b</p>`,
		},
		{
			name: "short youtube domain",
			in:   `<IFRAME SRC="https://youtu.be/abc"></IFRAME>`,
			want: `[epfl_video url="https://youtu.be/abc"]`,
		},
		{
			name: "other host untouched",
			in:   `<iframe src="https://maps.google.com/x"></iframe>`,
			want: `<iframe src="https://maps.google.com/x"></iframe>`,
		},
		{
			name: "lookalike host untouched",
			in:   `<iframe src="https://notyoutube.com/embed/x"></iframe>`,
			want: `<iframe src="https://notyoutube.com/embed/x"></iframe>`,
		},
		{
			name: "no src",
			in:   `<iframe></iframe>`,
			want: `<iframe></iframe>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FixVideoIframes(tt.in, DefaultVideoHosts); got != tt.want {
				t.Errorf("FixVideoIframes() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsVideoURL(t *testing.T) {
	tests := map[string]bool{
		"https://www.youtube.com/embed/x": true,
		"//youtube.com/embed/x":           true,
		"https://youtu.be/x":              true,
		"https://player.vimeo.com/v/1":    true,
		"https://vimeo.com/1":             false,
		"/local/video":                    false,
		"":                                false,
	}
	for in, want := range tests {
		if got := IsVideoURL(in, DefaultVideoHosts); got != want {
			t.Errorf("IsVideoURL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFixImageAlignLeft(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{
			name: "align left",
			in:   `<p><img src="/files/a.png" align="left"></p>`,
			want: `<p><img src="/files/a.png" class="left"></p>`,
		},
		{
			name: "self closing with class",
			in:   `<img class="photo" align="left" alt="a &amp; b"/>`,
			want: `<img alt="a &amp; b" class="left" />`,
		},
		{
			name: "align right untouched",
			in:   `<img src='x' align="right">`,
			want: `<img src='x' align="right">`,
		},
		{
			name: "no images",
			in:   `<p align="left">text</p>`,
			want: `<p align="left">text</p>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FixImageAlignLeft(tt.in); got != tt.want {
				t.Errorf("FixImageAlignLeft() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAddHeadingIDs(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{
			name: "simple",
			in:   `<h3>Hello World</h3>`,
			want: `<h3 id="hello-world">Hello World</h3>`,
		},
		{
			name: "nested markup and attributes",
			in:   `<h3 class="t"><b>Études</b> &amp; recherche</h3><p>x</p>`,
			want: `<h3 class="t" id="etudes-recherche"><b>Études</b> &amp; recherche</h3><p>x</p>`,
		},
		{
			name: "ampersand",
			in:   `<h3>Q&amp;A</h3>`,
			want: `<h3 id="q-a">Q&amp;A</h3>`,
		},
		{
			name: "at sign",
			in:   `<h3>Tom @ EPFL</h3>`,
			want: `<h3 id="tom-epfl">Tom @ EPFL</h3>`,
		},
		{
			name: "underscore",
			in:   `<h3>foo_bar</h3>`,
			want: `<h3 id="foo-bar">foo_bar</h3>`,
		},
		{
			name: "existing id",
			in:   `<h3 id="keep">Title</h3>`,
			want: `<h3 id="keep">Title</h3>`,
		},
		{
			name: "empty heading",
			in:   `<h3>  </h3><h2>Other</h2>`,
			want: `<h3>  </h3><h2>Other</h2>`,
		},
		{
			name: "duplicates are not renamed",
			in:   `<h3>A</h3><h3>A</h3>`,
			want: `<h3 id="a">A</h3><h3 id="a">A</h3>`,
		},
		{
			name: "unterminated",
			in:   `<h3>Open`,
			want: `<h3>Open`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddHeadingIDs(tt.in); got != tt.want {
				t.Errorf("AddHeadingIDs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProcessIsIdempotent(t *testing.T) {
	inputs := []string{
		`<h3>Hello World</h3>`,
		`<iframe src="https://www.youtube.com/embed/xyz"></iframe><h3>Video</h3>`,
		`<div><img align="left" src="a.png"><h3 class="x">Ça marche</h3><iframe src="https://example.com"></iframe></div>`,
		`[epfl_news channel="1" lang="fr"]`,
		``,
	}
	for _, in := range inputs {
		once := Process(in, DefaultVideoHosts)
		twice := Process(once, DefaultVideoHosts)
		if once != twice {
			t.Errorf("Process() is not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestProcessOrder(t *testing.T) {
	got := Process(`<h3>Intro</h3><iframe src="https://youtu.be/a"></iframe><img align="left" src="b.png">`, DefaultVideoHosts)
	want := `<h3 id="intro">Intro</h3>[epfl_video url="https://youtu.be/a"]<img src="b.png" class="left">`
	if got != want {
		t.Fatalf("Process() = %q, want %q", got, want)
	}
}

func TestPreservesUntouchedMarkup(t *testing.T) {
	in := "<P CLASS=x>Some&nbsp;text<br>\n<!-- note --><a href='/page-1-fr.html'>link</a></P>"
	if got := Process(in+"<h3>T</h3>", DefaultVideoHosts); !strings.HasPrefix(got, in) {
		t.Fatalf("Process() changed untouched markup: %q", got)
	}
}

func TestReplaceTwitterTimelines(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{
			name: "timeline with loader",
			in: `  <a class="twitter-timeline" href="https://twitter.com/EPFL">Tweets by EPFL</a>` +
				`<script>!function(d,s,id){}(document,"script","twitter-wjs");</script>  `,
			want: `[epfl_twitter url="https://twitter.com/EPFL"]`,
		},
		{
			name: "external widget loader",
			in: `<a class="twitter-timeline" href="https://twitter.com/epfl">Tweets</a> ` +
				`<script async src="https://platform.twitter.com/widgets.js" charset="utf-8"></script>`,
			want: `[epfl_twitter url="https://twitter.com/epfl"]`,
		},
		{
			name: "unrelated script kept",
			in:   `<p>x</p><a class="btn twitter-timeline" href="https://twitter.com/a">a</a><script>alert(1)</script>`,
			want: "<p>x</p>[epfl_twitter url=\"https://twitter.com/a\"]\n<script>alert(1)</script>",
		},
		{
			name: "no href",
			in:   ` <a class="twitter-timeline">x</a> `,
			want: ` <a class="twitter-timeline">x</a> `,
		},
		{
			name: "not a timeline",
			in:   `<p>twitter-timeline</p>`,
			want: `<p>twitter-timeline</p>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReplaceTwitterTimelines(tt.in); got != tt.want {
				t.Errorf("ReplaceTwitterTimelines() = %q, want %q", got, tt.want)
			}
		})
	}
}
