package response

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// Templ creates a custom body that renders a templ component with ctx.
// No content type is inferred; wrap the response with WithHeaders to set one.
func Templ(ctx context.Context, component templ.Component) Body {
	if component == nil {
		return customBody{}
	}
	return CustomSerializer(SerializerFunc(func() (string, error) {
		var sb strings.Builder
		if err := component.Render(ctx, &sb); err != nil {
			return "", err
		}
		return sb.String(), nil
	}))
}
