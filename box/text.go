package box

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"jahia2wp/jahia"
	"jahia2wp/markup"
)

const schedulerRule = "START_AND_END_DATE"

// text converts text, colored text and one column container boxes. Simple box
// has a single <text> with optional files and links lists, multibox has
// several <comboList> entries, each of the same structure.
func (t *transformer) text() error {
	if !t.multibox {
		content := markup.ReplaceTwitterTimelines(value(t.el, "text"))
		if files := jahia.FirstByTag(t.el, "filesList"); files != nil {
			content += fileList(files)
		}
		if links := jahia.FirstByTag(t.el, "linksList"); links != nil {
			list, err := t.linkList(links)
			if err != nil {
				return err
			}
			content += list
		}
		t.box.Content = content
		return nil
	}

	type entry struct {
		el      *etree.Element
		content string
	}
	var entries []entry
	for _, combo := range jahia.ElementsByTag(t.el, "comboList") {
		content := value(combo, "text") + fileList(combo)
		links, err := t.linkList(combo)
		if err != nil {
			return err
		}
		if content += links; content == "" {
			continue
		}
		entries = append(entries, entry{el: combo, content: content})
	}

	spec := ParseSortSpec(jahia.TagAttribute(t.el, "comboListList", "jahia:sortHandler"))
	if !spec.IsZero() {
		for _, e := range entries {
			if jahia.Attr(e.el, "jcr:"+spec.Field) == "" {
				t.log.Error("Combo entry has no sort value, disabling sorting", zap.String("field", spec.Field))
				spec = ParseSortSpec("")
				break
			}
		}
	}

	group := NewSortGroup[string]("", spec)
	for i, e := range entries {
		key := IndexKey(i)
		if !spec.IsZero() {
			key = ValueKey(jahia.Attr(e.el, "jcr:"+spec.Field))
		}
		group.Add(e.content, key)
	}

	var b strings.Builder
	for _, content := range group.Sorted() {
		b.WriteString(markup.ReplaceTwitterTimelines(content))
	}
	content := b.String()

	if jahia.TagAttribute(t.el, "comboList", "jahia:ruleType") == schedulerRule {
		content = t.scheduler(content)
	}
	t.box.Content = content
	return nil
}

// scheduler wraps content into [epfl_scheduler] limiting its visibility to
// Jahia validity window. Content which is always visible is returned as is.
func (t *transformer) scheduler(content string) string {
	from := jahia.TagAttribute(t.el, "comboList", "jahia:validFrom")
	to := jahia.TagAttribute(t.el, "comboList", "jahia:validTo")

	if from == "" && to == "" {
		t.log.Info("Scheduler has no start date and no end date, simply using content")
		return content
	}

	today := t.scope.today()
	startDate, startTime := splitDateTime(from)
	endDate, endTime := splitDateTime(to)

	if startDate != "" && endDate == "" && startDate < today {
		t.log.Info("Scheduler has a start date in the past and no end date, simply using content", zap.String("start", startDate))
		return content
	}
	// past end date is fine, shortcode will not display anything
	if startDate == "" && endDate != "" {
		startDate = today
	}

	t.box.ShortcodeName = "epfl_scheduler"
	return newShortcode(t.box.ShortcodeName).
		attr("start_date", startDate).
		attr("end_date", endDate).
		attr("start_time", startTime).
		attr("end_time", endTime).
		wrap(content)
}

// splitDateTime splits Jahia "2018-01-31T10:00:00" into date and time.
func splitDateTime(v string) (date, tm string) {
	date, tm, _ = strings.Cut(strings.TrimSpace(v), "T")
	return date, tm
}

// fileList renders <file> elements as list of links.
func fileList(el *etree.Element) string {
	var b strings.Builder
	for _, f := range jahia.ElementsByTag(el, "file") {
		repoPath := jahia.Attr(f, "jahia:value")
		if repoPath == "" {
			continue
		}
		path := siteFilePath(repoPath)
		name := path[strings.LastIndexByte(path, '/')+1:]
		b.WriteString(`<li><a href="` + path + `">` + name + `</a></li>`)
	}
	if b.Len() == 0 {
		return ""
	}
	return "<ul>" + b.String() + "</ul>"
}

// linkList renders <links> entries of el as list of links. Sort handler of el
// may require ordering by title of "jahia:<tag>" element, in this case every
// entry must have it.
func (t *transformer) linkList(el *etree.Element) (string, error) {
	spec := ParseSortSpec(jahia.Attr(el, "jahia:sortHandler"))
	var sortTag string
	if !spec.IsZero() {
		sortTag = "jahia:" + spec.TagName()
	}

	group := NewSortGroup[string]("", spec)
	for _, links := range jahia.ElementsByTag(el, "links") {
		key := IndexKey(group.Len())
		if sortTag != "" {
			v := jahia.Attr(jahia.FirstByTag(links, sortTag), "jahia:title")
			if v == "" {
				return "", fmt.Errorf("%w: links sorted by %s", ErrMissingSortValue, sortTag)
			}
			key = ValueKey(v)
		}

		var desc, title, url, ref string
		unresolved := false
		for _, c := range links.ChildElements() {
			switch c.FullTag() {
			case "linkDesc":
				desc = jahia.Attr(c, "jahia:value")
			case "link":
				for _, target := range c.ChildElements() {
					switch target.FullTag() {
					case "jahia:link":
						title = jahia.Attr(target, "jahia:title")
						ref = jahia.Attr(target, "jahia:reference")
						page, ok := t.scope.page(ref)
						if !ok {
							unresolved = true
							continue
						}
						url = page.URL()
					case "jahia:url":
						title = jahia.Attr(target, "jahia:title")
						url = jahia.Attr(target, "jahia:value")
					}
				}
			}
		}
		if unresolved {
			t.log.Warn("Link references unknown page, skipping", zap.String("uuid", ref), zap.String("title", title))
			continue
		}
		group.Add(`<li><a href="`+url+`">`+title+`</a>`+desc+`</li>`, key)
	}

	if group.Len() == 0 {
		return "", nil
	}
	return "<ul>" + strings.Join(group.Sorted(), "") + "</ul>", nil
}
