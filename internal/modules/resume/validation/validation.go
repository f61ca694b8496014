package validation

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"

	"github.com/yungbote/careergraph-backend/internal/domain/resume"
)

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate turns raw parser output into a Document.
//
// Only a missing (or non-string, or blank) email is fatal. Missing lists
// become empty lists, scalars of the wrong type become null, and list entries
// of the wrong shape are kept as empty entries so the identity resolver skips
// them at their original index.
func Validate(raw []byte) (*resume.Document, error) {
	root, err := parseRoot(raw)
	if err != nil {
		return nil, err
	}

	doc := &resume.Document{
		FirstName:  optString(root.Get("first_name")),
		MiddleName: optString(root.Get("middle_name")),
		LastName:   optString(root.Get("last_name")),
		ContactNo:  optContact(root.Get("contact_no")),
		Email:      emailField(root.Get("email")),
	}
	if err := structValidator.Struct(doc); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, &resume.MissingRequiredFieldError{Field: verrs[0].Field()}
		}
		return nil, err
	}

	doc.Education = educationList(listField(doc, root, resume.EntityEducation, "education"))
	doc.Experience = experienceList(listField(doc, root, resume.EntityExperience, "experience"))
	doc.Skills = stringList(listField(doc, root, resume.EntitySkill, "skills"))
	doc.Certifications = stringList(listField(doc, root, resume.EntityCertification, "certifications"))
	return doc, nil
}

func parseRoot(raw []byte) (gjson.Result, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return gjson.Result{}, fmt.Errorf("%w: empty body", resume.ErrMalformedDocument)
	}
	if !gjson.ValidBytes(trimmed) {
		return gjson.Result{}, fmt.Errorf("%w: invalid JSON", resume.ErrMalformedDocument)
	}
	root := gjson.ParseBytes(trimmed)
	// Parser output is sometimes submitted as a JSON string holding the object.
	if root.Type == gjson.String {
		inner := strings.TrimSpace(root.Str)
		if !gjson.Valid(inner) {
			return gjson.Result{}, fmt.Errorf("%w: string payload is not JSON", resume.ErrMalformedDocument)
		}
		root = gjson.Parse(inner)
	}
	if !root.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: expected a JSON object", resume.ErrMalformedDocument)
	}
	return root, nil
}

func emailField(r gjson.Result) string {
	if r.Type != gjson.String {
		return ""
	}
	return strings.TrimSpace(r.Str)
}

// listField returns the array items of a list field, or nil when the field is
// absent, null, or not an array. The last case is recorded on the document.
func listField(doc *resume.Document, root gjson.Result, kind resume.EntityKind, name string) []gjson.Result {
	r := root.Get(name)
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	if !r.IsArray() {
		doc.Warnings = append(doc.Warnings, resume.UnresolvableEntityWarning{
			Entity: kind,
			Index:  -1,
			Reason: fmt.Sprintf("%s is not a list", name),
		})
		return nil
	}
	return r.Array()
}

func educationList(items []gjson.Result) []resume.EducationEntry {
	out := make([]resume.EducationEntry, 0, len(items))
	for _, it := range items {
		if !it.IsObject() {
			out = append(out, resume.EducationEntry{})
			continue
		}
		out = append(out, resume.EducationEntry{
			University:     optString(it.Get("university")),
			Degree:         optString(it.Get("degree")),
			Major:          optString(it.Get("major")),
			CGPA:           optFloat(it.Get("cgpa")),
			Scale:          optFloat(it.Get("scale")),
			Minor:          optStringSlice(it.Get("minor")),
			GraduationDate: optString(it.Get("graduation_date")),
		})
	}
	return out
}

func experienceList(items []gjson.Result) []resume.ExperienceEntry {
	out := make([]resume.ExperienceEntry, 0, len(items))
	for _, it := range items {
		if !it.IsObject() {
			out = append(out, resume.ExperienceEntry{})
			continue
		}
		out = append(out, resume.ExperienceEntry{
			Company:     optString(it.Get("company")),
			Position:    optString(it.Get("position")),
			Description: optString(it.Get("description")),
			StartDate:   optString(it.Get("start_date")),
			EndDate:     optString(it.Get("end_date")),
		})
	}
	return out
}

// stringList keeps one slot per item; items that are not strings or numbers
// become "" and are skipped later.
func stringList(items []gjson.Result) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := optString(it); s != nil {
			out = append(out, *s)
			continue
		}
		out = append(out, "")
	}
	return out
}

func optString(r gjson.Result) *string {
	switch r.Type {
	case gjson.String:
		s := r.Str
		return &s
	case gjson.Number:
		s := r.Raw
		return &s
	default:
		return nil
	}
}

// optContact treats an empty contact number as absent.
func optContact(r gjson.Result) *string {
	s := optString(r)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func optFloat(r gjson.Result) *float64 {
	switch r.Type {
	case gjson.Number:
		f := r.Num
		return &f
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

func optStringSlice(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	out := []string{}
	for _, it := range r.Array() {
		if it.Type == gjson.String {
			out = append(out, it.Str)
		}
	}
	return out
}

// Object returns the document object in raw, unwrapping a JSON string
// payload. It fails with ErrMalformedDocument like Validate does.
func Object(raw []byte) ([]byte, error) {
	root, err := parseRoot(raw)
	if err != nil {
		return nil, err
	}
	return []byte(root.Raw), nil
}

// CareerPath reads the optional career_path sent alongside a document. It is
// echoed to the client and never stored.
func CareerPath(raw []byte) *string {
	root, err := parseRoot(raw)
	if err != nil {
		return nil
	}
	return optString(root.Get("career_path"))
}
