package response

import (
	"html/template"
	"strings"
)

// Template creates a custom body that executes the named html/template with data.
// An empty name executes t itself.
func Template(t *template.Template, name string, data any) Body {
	if t == nil {
		return customBody{}
	}
	return CustomSerializer(SerializerFunc(func() (string, error) {
		var sb strings.Builder
		var err error
		if name == "" {
			err = t.Execute(&sb, data)
		} else {
			err = t.ExecuteTemplate(&sb, name, data)
		}
		if err != nil {
			return "", err
		}
		return sb.String(), nil
	}))
}
