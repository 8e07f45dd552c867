package tools

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

var methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
}

func normalizeMethod(m string) string {
	return strings.ToUpper(strings.TrimSpace(m))
}

// Validate checks the tool definition.
func (t *Tool) Validate() error {
	var errs []error

	if strings.TrimSpace(t.ID) == "" {
		errs = append(errs, &FieldError{"id", "required"})
	}
	if strings.TrimSpace(t.Name) == "" {
		errs = append(errs, &FieldError{"name", "required"})
	}
	if strings.TrimSpace(t.Description) == "" {
		errs = append(errs, &FieldError{"description", "required"})
	}

	errs = append(errs, t.HTTPConfig.validate()...)
	return errors.Join(errs...)
}

func (c *HTTPConfig) validate() []error {
	var errs []error

	baseValid := false
	u, err := url.Parse(c.BaseURL)
	switch {
	case strings.TrimSpace(c.BaseURL) == "":
		errs = append(errs, &FieldError{"httpConfig.baseUrl", "required"})
	case err != nil:
		errs = append(errs, &FieldError{"httpConfig.baseUrl", err.Error()})
	case u.Scheme != "http" && u.Scheme != "https", u.Host == "":
		errs = append(errs, &FieldError{"httpConfig.baseUrl", "must be an absolute http or https url"})
	default:
		baseValid = true
	}

	if !slices.Contains(methods, normalizeMethod(c.Method)) {
		errs = append(errs, &FieldError{"httpConfig.method", fmt.Sprintf("unsupported method %q", c.Method)})
	}

	if !strings.HasPrefix(c.Endpoint, "/") {
		errs = append(errs, &FieldError{"httpConfig.endpoint", "must start with /"})
	} else if _, err := url.Parse(c.URL()); baseValid && err != nil {
		errs = append(errs, &FieldError{"httpConfig.endpoint", err.Error()})
	}

	seen := make(map[string]bool, len(c.Parameters))
	for i, p := range c.Parameters {
		field := fmt.Sprintf("httpConfig.parameters[%d]", i)
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, &FieldError{field + ".name", "required"})
		} else if seen[p.Name] {
			errs = append(errs, &FieldError{field + ".name", fmt.Sprintf("duplicate parameter %q", p.Name)})
		}
		seen[p.Name] = true

		if strings.TrimSpace(p.Description) == "" {
			errs = append(errs, &FieldError{field + ".description", "required"})
		}
		if !p.Type.Valid() {
			errs = append(errs, &FieldError{field + ".type", fmt.Sprintf("unsupported type %q", p.Type)})
		}
	}

	return errs
}
