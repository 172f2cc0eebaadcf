package commands

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"
)

// argSpec is one tagged field of an args struct
type argSpec struct {
	index    int
	name     string
	title    string
	optional bool
	def      string
	rules    []string
}

// ParseInlineArgs fills the struct dest points to from an inline argument
// string typed after a palette command. Tokens are either positional
// ("true") or named ("with-source=true"); positional tokens fill the
// tagged fields in declaration order.
//
// Field tags:
//
//	form:"name" title:"Display" optional:"true" default:"val" validate:"min=1,oneof=a|b"
//
// Supported field types are string, bool, the integer kinds and
// time.Duration.
func ParseInlineArgs(dest any, argString string) error {
	if dest == nil {
		return nil
	}
	val := reflect.ValueOf(dest)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("args must be a pointer to struct, got %T", dest)
	}
	val = val.Elem()

	specs := argSpecs(val.Type())
	values, err := assignTokens(specs, strings.Fields(argString))
	if err != nil {
		return err
	}

	for _, spec := range specs {
		raw, given := values[spec.name]
		if !given {
			switch {
			case spec.def != "":
				raw = spec.def
			case spec.optional:
				continue
			default:
				return fmt.Errorf("missing required argument: %s", spec.title)
			}
		}

		field := val.Field(spec.index)
		if err := setFieldValue(field, raw); err != nil {
			return fmt.Errorf("invalid value for %s: %w", spec.title, err)
		}
		if err := validateField(field, raw, spec.rules); err != nil {
			return fmt.Errorf("validation failed for %s: %w", spec.title, err)
		}
	}
	return nil
}

func argSpecs(typ reflect.Type) []argSpec {
	var specs []argSpec
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		name := f.Tag.Get("form")
		if name == "" {
			continue
		}
		title := f.Tag.Get("title")
		if title == "" {
			title = f.Name
		}
		var rules []string
		if v := f.Tag.Get("validate"); v != "" {
			for _, r := range strings.Split(v, ",") {
				rules = append(rules, strings.TrimSpace(r))
			}
		}
		specs = append(specs, argSpec{
			index:    i,
			name:     name,
			title:    title,
			optional: f.Tag.Get("optional") == "true",
			def:      f.Tag.Get("default"),
			rules:    rules,
		})
	}
	return specs
}

// assignTokens maps each token to a field name. Named tokens may appear
// anywhere; positional tokens take the next field not yet named.
func assignTokens(specs []argSpec, tokens []string) (map[string]string, error) {
	values := make(map[string]string, len(tokens))
	var positional []string

	for _, tok := range tokens {
		name, value, named := strings.Cut(tok, "=")
		if !named {
			positional = append(positional, tok)
			continue
		}
		if !slices.ContainsFunc(specs, func(s argSpec) bool { return s.name == name }) {
			return nil, fmt.Errorf("unknown argument: %s", name)
		}
		values[name] = value
	}

	next := 0
	for _, spec := range specs {
		if next >= len(positional) {
			break
		}
		if _, ok := values[spec.name]; ok {
			continue
		}
		values[spec.name] = positional[next]
		next++
	}
	if next < len(positional) {
		return nil, fmt.Errorf("too many arguments: %s", strings.Join(positional[next:], " "))
	}
	return values, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

func setFieldValue(field reflect.Value, value string) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("must be a duration like 30s or 2m")
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("must be true or false")
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("must be an integer")
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("must be a positive integer")
		}
		field.SetUint(n)
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
	return nil
}

// validateField applies the rules of a validate tag. min and max compare
// integers only; oneof compares the raw text.
func validateField(field reflect.Value, raw string, rules []string) error {
	for _, rule := range rules {
		name, arg, _ := strings.Cut(rule, "=")
		switch name {
		case "required":
			if field.IsZero() {
				return fmt.Errorf("required")
			}
		case "oneof":
			allowed := strings.Split(arg, "|")
			if !slices.Contains(allowed, raw) {
				return fmt.Errorf("must be one of %s", strings.Join(allowed, ", "))
			}
		case "min", "max":
			if !field.CanInt() || field.Type() == durationType {
				continue
			}
			limit, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				continue
			}
			if name == "min" && field.Int() < limit {
				return fmt.Errorf("must be >= %d", limit)
			}
			if name == "max" && field.Int() > limit {
				return fmt.Errorf("must be <= %d", limit)
			}
		}
	}
	return nil
}
