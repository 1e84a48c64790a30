// Package docs builds the Swagger 2.0 description of the API from the same
// schema structs the router validates requests with.
//
// Field names come from the `json` tag (or `uri` for path parameters),
// `binding:"required"` marks a property as required, and the optional
// `description` and `example` tags are copied into the document.
package docs

import (
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/spec"
	"github.com/goccy/go-json"
)

const SecurityName = "jwt"

var timeType = reflect.TypeOf(time.Time{})

type Info struct {
	Title   string
	Version string
	Host    string
}

// Endpoint describes one route. Params, Body and Response hold a zero value
// of the schema type, or nil when the route has none.
type Endpoint struct {
	Method      string
	Path        string
	Description string
	Tags        []string
	Params      any
	Body        any
	Response    any
	Status      int
	Failures    map[int]string
}

// Build assembles the document. The security definition is descriptive only.
func Build(info Info, endpoints []Endpoint) (*spec.Swagger, error) {
	b := &builder{definitions: spec.Definitions{}}
	paths := map[string]spec.PathItem{}
	tags := map[string]struct{}{}

	for _, endpoint := range endpoints {
		op, err := b.operation(endpoint)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", endpoint.Method, endpoint.Path, err)
		}

		path := SwaggerPath(endpoint.Path)
		item := paths[path]
		if err := setOperation(&item, endpoint.Method, op); err != nil {
			return nil, fmt.Errorf("%s %s: %w", endpoint.Method, endpoint.Path, err)
		}
		paths[path] = item

		for _, tag := range endpoint.Tags {
			tags[tag] = struct{}{}
		}
	}

	doc := &spec.Swagger{SwaggerProps: spec.SwaggerProps{
		Swagger:  "2.0",
		Host:     info.Host,
		BasePath: "/",
		Schemes:  []string{"http"},
		Info: &spec.Info{InfoProps: spec.InfoProps{
			Title:   info.Title,
			Version: info.Version,
		}},
		Paths:       &spec.Paths{Paths: paths},
		Definitions: b.definitions,
		SecurityDefinitions: spec.SecurityDefinitions{
			SecurityName: spec.APIKeyAuth("Authorization", "header"),
		},
		Security: []map[string][]string{{SecurityName: {}}},
	}}

	names := make([]string, 0, len(tags))
	for tag := range tags {
		names = append(names, tag)
	}
	sort.Strings(names)
	for _, name := range names {
		doc.Tags = append(doc.Tags, spec.NewTag(name, "", nil))
	}

	return doc, nil
}

func Marshal(doc *spec.Swagger) ([]byte, error) {
	return json.Marshal(doc)
}

// SwaggerPath converts gin's /books/:id syntax into /books/{id}.
func SwaggerPath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") || strings.HasPrefix(segment, "*") {
			segments[i] = "{" + segment[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

func operationId(method, path string) string {
	var id strings.Builder
	id.WriteString(strings.ToLower(method))
	for _, segment := range strings.Split(path, "/") {
		segment = strings.TrimLeft(segment, ":*")
		if segment == "" {
			continue
		}
		id.WriteString(strings.ToUpper(segment[:1]) + segment[1:])
	}
	return id.String()
}

func setOperation(item *spec.PathItem, method string, op *spec.Operation) error {
	var slot **spec.Operation
	switch method {
	case http.MethodGet:
		slot = &item.Get
	case http.MethodPost:
		slot = &item.Post
	case http.MethodPut:
		slot = &item.Put
	case http.MethodPatch:
		slot = &item.Patch
	case http.MethodDelete:
		slot = &item.Delete
	default:
		return fmt.Errorf("unsupported method %q", method)
	}
	if *slot != nil {
		return fmt.Errorf("operation already declared")
	}
	*slot = op
	return nil
}

type builder struct {
	definitions spec.Definitions
}

func (b *builder) operation(endpoint Endpoint) (*spec.Operation, error) {
	op := spec.NewOperation(operationId(endpoint.Method, endpoint.Path)).
		WithDescription(endpoint.Description).
		WithSummary(endpoint.Description).
		WithTags(endpoint.Tags...).
		WithProduces("application/json")

	if endpoint.Params != nil {
		params, err := b.pathParams(reflect.TypeOf(endpoint.Params))
		if err != nil {
			return nil, err
		}
		for _, param := range params {
			op.AddParam(param)
		}
	}

	if endpoint.Body != nil {
		schema, err := b.schemaFor(reflect.TypeOf(endpoint.Body))
		if err != nil {
			return nil, err
		}
		op.WithConsumes("application/json")
		op.AddParam(spec.BodyParam("body", schema).AsRequired())
	}

	status := endpoint.Status
	if status == 0 {
		status = http.StatusOK
	}
	success := spec.NewResponse().WithDescription(http.StatusText(status))
	if endpoint.Response != nil {
		schema, err := b.schemaFor(reflect.TypeOf(endpoint.Response))
		if err != nil {
			return nil, err
		}
		success.WithSchema(schema)
	}
	op.RespondsWith(status, success)

	for code, description := range endpoint.Failures {
		op.RespondsWith(code, spec.NewResponse().WithDescription(description))
	}

	return op, nil
}

func (b *builder) pathParams(t reflect.Type) ([]*spec.Parameter, error) {
	t = indirect(t)
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("path parameters must be a struct, got %s", t.Kind())
	}

	var params []*spec.Parameter
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := tagName(field, "uri")
		if name == "" {
			continue
		}
		schema, err := primitive(field.Type)
		if err != nil {
			return nil, fmt.Errorf("path parameter %s: %w", name, err)
		}
		param := spec.PathParam(name).
			Typed(schema.Type[0], schema.Format).
			WithDescription(field.Tag.Get("description"))
		params = append(params, param)
	}
	return params, nil
}

func (b *builder) schemaFor(t reflect.Type) (*spec.Schema, error) {
	t = indirect(t)
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		items, err := b.schemaFor(t.Elem())
		if err != nil {
			return nil, err
		}
		return spec.ArrayProperty(items), nil
	case reflect.Struct:
		if t == timeType {
			return spec.DateTimeProperty(), nil
		}
		if _, ok := b.definitions[t.Name()]; !ok {
			// placeholder first so self references terminate
			b.definitions[t.Name()] = spec.Schema{}
			schema, err := b.structSchema(t)
			if err != nil {
				delete(b.definitions, t.Name())
				return nil, err
			}
			b.definitions[t.Name()] = *schema
		}
		return spec.RefSchema("#/definitions/" + t.Name()), nil
	default:
		return primitive(t)
	}
}

func (b *builder) structSchema(t reflect.Type) (*spec.Schema, error) {
	schema := new(spec.Schema).Typed("object", "").WithTitle(t.Name())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := tagName(field, "json")
		if name == "" {
			continue
		}

		property, err := b.schemaFor(field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		if property.Ref.String() == "" {
			property.WithDescription(field.Tag.Get("description"))
			if example, ok := field.Tag.Lookup("example"); ok {
				property.WithExample(exampleValue(property, example))
			}
		}
		schema.SetProperty(name, *property)

		if isRequired(field) {
			schema.AddRequired(name)
		}
	}
	return schema, nil
}

func primitive(t reflect.Type) (*spec.Schema, error) {
	switch indirect(t).Kind() {
	case reflect.String:
		return spec.StringProperty(), nil
	case reflect.Bool:
		return spec.BoolProperty(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(spec.Schema).Typed("integer", ""), nil
	case reflect.Float32:
		return spec.Float32Property(), nil
	case reflect.Float64:
		return spec.Float64Property(), nil
	}
	return nil, fmt.Errorf("unsupported type %s", t)
}

func exampleValue(schema *spec.Schema, example string) any {
	if len(schema.Type) == 0 {
		return example
	}
	switch schema.Type[0] {
	case "integer":
		if n, err := strconv.ParseInt(example, 10, 64); err == nil {
			return n
		}
	case "number":
		if x, err := strconv.ParseFloat(example, 64); err == nil {
			return x
		}
	case "boolean":
		if v, err := strconv.ParseBool(example); err == nil {
			return v
		}
	}
	return example
}

func tagName(field reflect.StructField, key string) string {
	if !field.IsExported() {
		return ""
	}
	tag, ok := field.Tag.Lookup(key)
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func isRequired(field reflect.StructField) bool {
	for _, rule := range strings.Split(field.Tag.Get("binding"), ",") {
		if rule == "required" {
			return true
		}
	}
	return false
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
