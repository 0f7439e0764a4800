package validators

import (
	"context"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/Rakhulsr/storefront-api/app/helpers"
	"github.com/Rakhulsr/storefront-api/app/utils/uploads"
	"github.com/go-playground/validator/v10"
)

const (
	maxMultipartMemory = 10 << 20
	maxJSONBody        = 1 << 20
)

var errUnsupportedField = errors.New("unsupported field type")

// Validator binds request bodies into input structs and validates them.
// The json tags of an input struct are the closed set of accepted fields.
// A field tagged upload:"<dir>,<prefix>" receives files from multipart
// bodies; they are stored through the upload store.
type Validator struct {
	engine  *validator.Validate
	store   Store
	uploads *uploads.Store
}

func New(store Store, up *uploads.Store) *Validator {
	return &Validator{engine: newEngine(), store: store, uploads: up}
}

type field struct {
	name   string
	index  int
	dir    string
	prefix string
}

func fieldsOf(t reflect.Type) []field {
	var out []field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if !sf.IsExported() || name == "" || name == "-" {
			continue
		}
		f := field{name: name, index: i}
		if up := sf.Tag.Get("upload"); up != "" {
			f.dir, f.prefix, _ = strings.Cut(up, ",")
			if f.prefix == "" {
				f.prefix = f.dir
			}
		}
		out = append(out, f)
	}
	return out
}

// Bind decodes the JSON or multipart body of r into dst, a pointer to an
// input struct, and validates it. It returns the upload paths stored for
// this request. On failure those uploads are already removed and the error
// is a *helpers.ValidationError, or a storage error from a rule.
func (v *Validator) Bind(r *http.Request, dst any, subject Subject) ([]string, error) {
	rv := reflect.ValueOf(dst).Elem()
	fields := fieldsOf(rv.Type())
	errs := &helpers.ValidationError{}

	var uploaded []string
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			errs.Add("", "Invalid multipart body", nil)
			return nil, errs
		}
		if msg := closedSet(formKeys(r.MultipartForm), fields); msg != "" {
			errs.Add("", msg, nil)
			return nil, errs
		}
		uploaded = v.decodeForm(r.MultipartForm, rv, fields, subject.Defaults, errs)
	} else {
		raw, err := readObject(r)
		if err != nil {
			errs.Add("", err.Error(), nil)
			return nil, errs
		}
		keys := make([]string, 0, len(raw))
		for k := range raw {
			keys = append(keys, k)
		}
		if msg := closedSet(keys, fields); msg != "" {
			errs.Add("", msg, nil)
			return nil, errs
		}
		decodeJSON(raw, rv, fields, subject.Defaults, errs)
	}

	if errs.Empty() {
		if err := v.engine.Struct(dst); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				v.uploads.Remove(uploaded)
				return nil, err
			}
			errs.Errors = append(errs.Errors, translate(verrs, dst)...)
		}
	}

	if ck, ok := dst.(checker); ok && errs.Empty() {
		c := &Checks{ctx: r.Context(), store: v.store, subject: subject, errs: errs}
		ck.check(c)
		if c.err != nil {
			v.uploads.Remove(uploaded)
			return nil, c.err
		}
	}

	if !errs.Empty() {
		v.uploads.Remove(uploaded)
		return nil, errs
	}
	return uploaded, nil
}

// ID rejects malformed path ids before any lookup.
func (v *Validator) ID(label, id string) error {
	if err := v.engine.Var(id, "required,uuid"); err != nil {
		errs := &helpers.ValidationError{}
		errs.Errors = append(errs.Errors, helpers.FieldError{
			Msg:      fmt.Sprintf("Invalid %s id format", label),
			Path:     "id",
			Location: "params",
			Value:    id,
		})
		return errs
	}
	return nil
}

// Check runs only the storage rules of in, for inputs that are not read
// from a request body.
func (v *Validator) Check(ctx context.Context, in any, subject Subject) error {
	ck, ok := in.(checker)
	if !ok {
		return nil
	}
	errs := &helpers.ValidationError{}
	c := &Checks{ctx: ctx, store: v.store, subject: subject, errs: errs}
	ck.check(c)
	if c.err != nil {
		return c.err
	}
	if !errs.Empty() {
		return errs
	}
	return nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func readObject(r *http.Request) (map[string]json.RawMessage, error) {
	raw := map[string]json.RawMessage{}
	if r.Body == nil {
		return raw, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
	if err != nil {
		return nil, errors.New("Could not read request body")
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.New("Request body must be a JSON object")
	}
	return raw, nil
}

func formKeys(form *multipart.Form) []string {
	var keys []string
	for k := range form.Value {
		keys = append(keys, k)
	}
	for k := range form.File {
		keys = append(keys, k)
	}
	return keys
}

// closedSet returns the rejection message when keys holds a field the input
// does not declare.
func closedSet(keys []string, fields []field) string {
	allowed := make(map[string]bool, len(fields))
	names := make([]string, len(fields))
	for i, f := range fields {
		allowed[f.name] = true
		names[i] = f.name
	}
	for _, k := range keys {
		if !allowed[strings.TrimSuffix(k, "[]")] {
			return fmt.Sprintf("Too many fields specified, only ( %s ) fields are allowed", strings.Join(names, " - "))
		}
	}
	return ""
}

func decodeJSON(raw map[string]json.RawMessage, rv reflect.Value, fields []field, defaults map[string]string, errs *helpers.ValidationError) {
	for _, f := range fields {
		data, ok := raw[f.name]
		if !ok {
			def, hasDef := defaults[f.name]
			if !hasDef {
				continue
			}
			data, _ = json.Marshal(def)
		}
		if string(data) == "null" {
			continue
		}
		target := rv.Field(f.index).Addr().Interface()
		if err := json.Unmarshal(data, target); err != nil {
			errs.Add(f.name, fmt.Sprintf("Invalid value for %s", f.name), string(data))
		}
	}
}

func (v *Validator) decodeForm(form *multipart.Form, rv reflect.Value, fields []field, defaults map[string]string, errs *helpers.ValidationError) []string {
	var uploaded []string
	for _, f := range fields {
		fv := rv.Field(f.index)

		if f.dir != "" {
			files := form.File[f.name]
			if len(files) == 0 {
				files = form.File[f.name+"[]"]
			}
			if len(files) > 0 {
				names := make([]string, 0, len(files))
				for _, fh := range files {
					stored, err := v.uploads.Save(f.dir, f.prefix, fh)
					if err != nil {
						errs.Add(f.name, uploadMessage(err), fh.Filename)
						continue
					}
					names = append(names, stored)
					uploaded = append(uploaded, f.dir+"/"+stored)
				}
				if len(names) > 0 {
					if err := setFromStrings(fv, names); err != nil {
						errs.Add(f.name, fmt.Sprintf("Invalid value for %s", f.name), nil)
					}
				}
				continue
			}
		}

		vals := form.Value[f.name]
		if len(vals) == 0 {
			vals = form.Value[f.name+"[]"]
		}
		if len(vals) == 0 {
			def, ok := defaults[f.name]
			if !ok {
				continue
			}
			vals = []string{def}
		}
		if err := setFromStrings(fv, vals); err != nil {
			errs.Add(f.name, fmt.Sprintf("Invalid value for %s", f.name), vals[0])
		}
	}
	return uploaded
}

func uploadMessage(err error) string {
	switch {
	case errors.Is(err, uploads.ErrUnsupportedType), errors.Is(err, uploads.ErrTooLarge):
		return err.Error()
	default:
		return "Could not process the uploaded image"
	}
}

// setFromStrings assigns form values to fv, converting by the field's kind.
func setFromStrings(fv reflect.Value, vals []string) error {
	if fv.Kind() == reflect.Pointer {
		elem := reflect.New(fv.Type().Elem())
		if err := setFromStrings(elem.Elem(), vals); err != nil {
			return err
		}
		fv.Set(elem)
		return nil
	}
	if tu, ok := fv.Addr().Interface().(encoding.TextUnmarshaler); ok {
		return tu.UnmarshalText([]byte(vals[0]))
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(vals[0])
	case reflect.Int, reflect.Int64, reflect.Int32:
		n, err := strconv.ParseInt(strings.TrimSpace(vals[0]), 10, 64)
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Float64, reflect.Float32:
		n, err := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		if err != nil {
			return err
		}
		fv.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(vals[0]))
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Slice:
		if fv.Type().Elem().Kind() != reflect.String {
			return errUnsupportedField
		}
		if len(vals) == 1 && strings.HasPrefix(strings.TrimSpace(vals[0]), "[") {
			var list []string
			if err := json.Unmarshal([]byte(vals[0]), &list); err != nil {
				return err
			}
			vals = list
		}
		fv.Set(reflect.ValueOf(append([]string(nil), vals...)))
	default:
		return errUnsupportedField
	}
	return nil
}
