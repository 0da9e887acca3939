// Package openapi builds the OpenAPI 3 description of the site API served at
// /openapi.json and printed by "corpsite openapi".
package openapi

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/corpsite/corpsite/internal/model"
)

// contentType describes one managed content collection.
type contentType struct {
	path   string // URL segment: "services"
	schema string // component name: "Service"
	noun   string // human name: "service"
	value  interface{}
}

var contentTypes = []contentType{
	{"services", "Service", "service", model.ServiceOffering{}},
	{"technologies", "Technology", "technology", model.Technology{}},
	{"projects", "Project", "project", model.Project{}},
	{"team", "TeamMember", "team member", model.TeamMember{}},
	{"testimonials", "Testimonial", "testimonial", model.Testimonial{}},
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type uploadResult struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// Generate builds the API document. version is reported as info.version and
// baseURL, when set, as the single server.
func Generate(version, baseURL string) *openapi3.T {
	if version == "" {
		version = "dev"
	}
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "corpsite API",
			Description: "Content API of the company website. Routes under /api/admin require a bearer token from POST /api/auth/login.",
			Version:     version,
		},
		Paths: openapi3.NewPaths(),
	}
	if baseURL != "" {
		doc.Servers = openapi3.Servers{{URL: strings.TrimRight(baseURL, "/")}}
	}

	components := openapi3.NewComponents()
	components.Schemas = openapi3.Schemas{}
	components.SecuritySchemes = openapi3.SecuritySchemes{
		"bearerAuth": &openapi3.SecuritySchemeRef{
			Value: &openapi3.SecurityScheme{
				Type:         "http",
				Scheme:       "bearer",
				BearerFormat: "JWT",
			},
		},
	}
	doc.Components = &components

	g := &generator{doc: doc}
	g.addSchema("ErrorResponse", SchemaOf(model.ErrorResponse{}))
	g.addSchema("LoginRequest", SchemaOf(loginRequest{}))
	g.addSchema("LoginResponse", SchemaOf(model.LoginResponse{}))
	for _, ct := range contentTypes {
		g.addSchema(ct.schema, SchemaOf(ct.value, "id", "createdAt"))
	}
	g.addSchema("CompanyProfile", SchemaOf(model.CompanyProfile{}, "id", "updatedAt"))
	g.addSchema("Contact", SchemaOf(model.Contact{}, "id", "createdAt"))
	g.addSchema("StatusRequest", SchemaOf(statusRequest{}))
	g.addSchema("UploadResult", SchemaOf(uploadResult{}))
	doc.Components.Schemas["Contact"].Value.Properties["status"].Value.Enum = enum(model.ContactStatuses)

	g.addAuthPaths()
	for _, ct := range contentTypes {
		g.addContentPaths(ct)
	}
	g.addCompanyPaths()
	g.addContactPaths()
	g.addUploadPaths()
	g.addProbePaths()
	return doc
}

type generator struct {
	doc *openapi3.T
}

func (g *generator) addSchema(name string, s *openapi3.Schema) {
	g.doc.Components.Schemas[name] = &openapi3.SchemaRef{Value: s}
}

// ref returns a reference to a component schema with its value resolved.
func (g *generator) ref(name string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{
		Ref:   "#/components/schemas/" + name,
		Value: g.doc.Components.Schemas[name].Value,
	}
}

func arrayOf(item *openapi3.SchemaRef) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"array"}, Items: item}}
}

// envelope wraps data in the success envelope {success, message, data}.
func envelope(data *openapi3.SchemaRef) *openapi3.SchemaRef {
	props := openapi3.Schemas{
		"success": {Value: typeSchema(TypeMapping{"boolean", ""})},
		"message": {Value: typeSchema(TypeMapping{"string", ""})},
	}
	if data != nil {
		props["data"] = data
	}
	return &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:       &openapi3.Types{"object"},
		Properties: props,
		Required:   []string{"success", "message"},
	}}
}

func enum(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func (g *generator) op(id, tag, summary string, admin bool, status string, body *openapi3.SchemaRef) *openapi3.Operation {
	op := &openapi3.Operation{
		OperationID: id,
		Tags:        []string{tag},
		Summary:     summary,
		Responses:   g.responses(status, body, admin),
	}
	if admin {
		op.Security = &openapi3.SecurityRequirements{{"bearerAuth": {}}}
	}
	return op
}

func (g *generator) withBody(op *openapi3.Operation, schema *openapi3.SchemaRef) *openapi3.Operation {
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(schema),
	}
	return op
}

func withID(op *openapi3.Operation) *openapi3.Operation {
	op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
		Value: openapi3.NewPathParameter("id").WithSchema(openapi3.NewStringSchema()),
	})
	return op
}

// responses builds the success response plus the error responses every
// route can produce.
func (g *generator) responses(status string, body *openapi3.SchemaRef, admin bool) *openapi3.Responses {
	responses := &openapi3.Responses{}

	desc := "Successful response"
	responses.Set(status, &openapi3.ResponseRef{Value: &openapi3.Response{
		Description: &desc,
		Content:     openapi3.NewContentWithJSONSchemaRef(body),
	}})

	failures := [][2]string{
		{"400", "Bad request"},
		{"500", "Something went wrong"},
	}
	if admin {
		failures = append(failures, [2]string{"401", "Unauthorized"}, [2]string{"404", "Not found"})
	}
	for _, e := range failures {
		d := e[1]
		responses.Set(e[0], &openapi3.ResponseRef{Value: &openapi3.Response{
			Description: &d,
			Content:     openapi3.NewContentWithJSONSchemaRef(g.ref("ErrorResponse")),
		}})
	}
	return responses
}

func (g *generator) addAuthPaths() {
	login := g.op("login", "auth", "Exchange admin credentials for a bearer token", false, "200", g.ref("LoginResponse"))
	desc := "Invalid credentials"
	login.Responses.Set("401", &openapi3.ResponseRef{Value: &openapi3.Response{
		Description: &desc,
		Content:     openapi3.NewContentWithJSONSchemaRef(g.ref("ErrorResponse")),
	}})
	g.doc.Paths.Set("/api/auth/login", &openapi3.PathItem{Post: g.withBody(login, g.ref("LoginRequest"))})

	me := envelope(&openapi3.SchemaRef{Value: SchemaOf(struct {
		Email       string   `json:"email"`
		Permissions []string `json:"permissions"`
	}{})})
	g.doc.Paths.Set("/api/admin/me", &openapi3.PathItem{
		Get: g.op("getCurrentAdmin", "auth", "Return the authenticated admin", true, "200", me),
	})
}

func (g *generator) addContentPaths(ct contentType) {
	item := envelope(g.ref(ct.schema))
	list := envelope(arrayOf(g.ref(ct.schema)))
	name := strings.ReplaceAll(ct.schema, " ", "")
	plural := ct.path

	g.doc.Paths.Set("/api/"+ct.path, &openapi3.PathItem{
		Get: g.op("listPublic"+name, plural, fmt.Sprintf("List active %s entries, newest first", ct.noun), false, "200", list),
	})
	if ct.path == "projects" {
		g.doc.Paths.Set("/api/projects/featured", &openapi3.PathItem{
			Get: g.op("listFeaturedProjects", plural, "List featured active projects", false, "200", list),
		})
	}

	adminList := g.op("list"+name, plural, fmt.Sprintf("List every %s entry, newest first", ct.noun), true, "200", list)
	adminList.Parameters = openapi3.Parameters{{Value: openapi3.NewQueryParameter("active").
		WithSchema(openapi3.NewBoolSchema()).
		WithDescription("Only return active entries")}}

	g.doc.Paths.Set("/api/admin/"+ct.path, &openapi3.PathItem{
		Get:  adminList,
		Post: g.withBody(g.op("create"+name, plural, "Create a "+ct.noun, true, "201", item), g.ref(ct.schema)),
	})
	g.doc.Paths.Set("/api/admin/"+ct.path+"/{id}", &openapi3.PathItem{
		Put:    withID(g.withBody(g.op("update"+name, plural, "Update a "+ct.noun, true, "200", item), g.ref(ct.schema))),
		Delete: withID(g.op("delete"+name, plural, "Delete a "+ct.noun, true, "200", envelope(nil))),
	})
	g.doc.Paths.Set("/api/admin/"+ct.path+"/{id}/toggle", &openapi3.PathItem{
		Patch: withID(g.op("toggle"+name, plural, "Flip the active flag of a "+ct.noun, true, "200", item)),
	})
}

func (g *generator) addCompanyPaths() {
	item := envelope(g.ref("CompanyProfile"))
	g.doc.Paths.Set("/api/company", &openapi3.PathItem{
		Get: g.op("getCompany", "company", "Get the company profile", false, "200", item),
	})
	g.doc.Paths.Set("/api/admin/company", &openapi3.PathItem{
		Get:  g.op("getCompanyAdmin", "company", "Get the company profile", true, "200", item),
		Post: g.withBody(g.op("saveCompany", "company", "Create or replace the company profile", true, "200", item), g.ref("CompanyProfile")),
		Put:  g.withBody(g.op("replaceCompany", "company", "Create or replace the company profile", true, "200", item), g.ref("CompanyProfile")),
	})
}

func (g *generator) addContactPaths() {
	item := envelope(g.ref("Contact"))

	submit := g.op("submitContact", "contacts", "Submit the contact form", false, "201", item)
	g.doc.Paths.Set("/api/contact", &openapi3.PathItem{Post: g.withBody(submit, g.ref("Contact"))})

	list := g.op("listContacts", "contacts", "List contact submissions, newest first", true, "200", envelope(arrayOf(g.ref("Contact"))))
	status := openapi3.NewStringSchema()
	status.Enum = enum(model.ContactStatuses)
	list.Parameters = openapi3.Parameters{{Value: openapi3.NewQueryParameter("status").
		WithSchema(status).
		WithDescription("Only return submissions in this status")}}
	g.doc.Paths.Set("/api/admin/contacts", &openapi3.PathItem{Get: list})

	counts := &openapi3.SchemaRef{Value: &openapi3.Schema{
		Type:                 &openapi3.Types{"object"},
		AdditionalProperties: openapi3.AdditionalProperties{Schema: &openapi3.SchemaRef{Value: openapi3.NewIntegerSchema()}},
	}}
	g.doc.Paths.Set("/api/admin/contacts/summary", &openapi3.PathItem{
		Get: g.op("contactSummary", "contacts", "Count submissions per status", true, "200", envelope(counts)),
	})

	g.doc.Paths.Set("/api/admin/contacts/{id}", &openapi3.PathItem{
		Delete: withID(g.op("deleteContact", "contacts", "Delete a submission", true, "200", envelope(nil))),
	})
	g.doc.Paths.Set("/api/admin/contacts/{id}/status", &openapi3.PathItem{
		Patch: withID(g.withBody(g.op("updateContactStatus", "contacts", "Change the status of a submission", true, "200", item), g.ref("StatusRequest"))),
	})
}

func (g *generator) addUploadPaths() {
	op := g.op("uploadTeamImage", "uploads", "Upload a team member photo", true, "200", envelope(g.ref("UploadResult")))
	form := openapi3.NewObjectSchema().WithProperty("file", &openapi3.Schema{
		Type:   &openapi3.Types{"string"},
		Format: "binary",
	})
	form.Required = []string{"file"}
	op.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
		WithRequired(true).
		WithFormDataSchema(form)}
	g.doc.Paths.Set("/api/admin/uploads/team-image", &openapi3.PathItem{Post: op})
}

func (g *generator) addProbePaths() {
	status := &openapi3.SchemaRef{Value: SchemaOf(struct {
		Status string `json:"status"`
	}{})}
	g.doc.Paths.Set("/healthz", &openapi3.PathItem{
		Get: g.op("healthz", "system", "Liveness probe", false, "200", status),
	})
	g.doc.Paths.Set("/readyz", &openapi3.PathItem{
		Get: g.op("readyz", "system", "Readiness probe, checks the database", false, "200", status),
	})
}
