package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"html/template"

	"shopping-dashboard/charts"
	"shopping-dashboard/dashboard"
	"shopping-dashboard/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// widgetPanels places each checkbox column next to the chart it drives.
var widgetPanels = map[charts.Kind]models.Dimension{
	charts.KindPie:  models.DimCategories,
	charts.KindLine: models.DimAgeGroups,
	charts.KindBar:  models.DimItems,
}

type pageData struct {
	dashboard.Frame
	Views   []panelView
	Version string
}

type panelView struct {
	charts.Panel
	Widgets *dashboard.CheckboxList
	Image   bool
	JSON    template.JS
}

func newPageData(f dashboard.Frame) pageData {
	data := pageData{Frame: f, Version: version(f)}
	for _, p := range f.Panels {
		v := panelView{Panel: p, Image: p.Rendered() && charts.HasImage(p.Kind)}
		if dim, ok := widgetPanels[p.Kind]; ok {
			v.Widgets = f.CheckboxesFor(dim)
		}
		if p.Rendered() {
			// json.Marshal escapes <, > and & so the payload is safe inside <script>.
			if b, err := json.Marshal(p.Spec); err == nil {
				v.JSON = template.JS(b)
			}
		}
		data.Views = append(data.Views, v)
	}
	return data
}

// version changes whenever the filters or selections do, so chart images are refetched.
func version(f dashboard.Frame) string {
	h := fnv.New64a()
	_ = json.NewEncoder(h).Encode(struct {
		S models.SidebarFilters
		A any
	}{f.Sidebar, f.Selection})
	return fmt.Sprintf("%x", h.Sum64())
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"has": func(list []string, v string) bool {
			for _, s := range list {
				if s == v {
					return true
				}
			}
			return false
		},
		"money": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	}).ParseFS(templateFS, "templates/*.html")
}
