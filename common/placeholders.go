// The only reason this package exists is that a downstream exporter has to
// finish what box conversion cannot know yet (target page language, media IDs
// after import). Both sides need the same contract, so it lives separately
// from conversion code.
package common

// Placeholder is a token left in generated content for a later stage to
// substitute.
type Placeholder string

// LanguagePlaceholder stands for the language of the target page. It is put
// into shortcode attributes verbatim.
const LanguagePlaceholder Placeholder = "UPDATE_LANG_BY_EXPORTER"

func (p Placeholder) String() string {
	return string(p)
}

// DeferredKind tells exporter what has to be done with deferred value.
type DeferredKind string

const (
	// DeferredLanguage - replace Token with page language.
	DeferredLanguage DeferredKind = "language"
	// DeferredMediaIDs - replace placeholder image list with carousel once
	// media IDs are known.
	DeferredMediaIDs DeferredKind = "media-ids"
)

// Deferred describes a single piece of box content exporter has to resolve.
type Deferred struct {
	Kind DeferredKind `yaml:"kind"`
	// Token is present in content verbatim and must be replaced.
	Token Placeholder `yaml:"token,omitempty"`
	// Shortcode carrying the token, empty for plain markup.
	Shortcode string `yaml:"shortcode,omitempty"`
	// Media is the list of site file paths which need media IDs.
	Media []string `yaml:"media,omitempty"`
}

// LanguageDeferred is a shortcut for the most common deferred value.
func LanguageDeferred(shortcode string) Deferred {
	return Deferred{Kind: DeferredLanguage, Token: LanguagePlaceholder, Shortcode: shortcode}
}
