package schema

import (
	"bytes"
	"encoding/json"

	"job-board/internal/dto"
	"job-board/internal/model"
	"job-board/internal/service"
)

// adminFields maps the accepted JSON keys onto RegisterRequest fields.
var adminFields = map[string]string{
	"email":    "Email",
	"name":     "Name",
	"password": "Password",
}

// LoadAdmin validates a registration and returns an unsaved Admin with its password hashed.
func LoadAdmin(req dto.RegisterRequest) (*model.Admin, error) {
	req.Email = NormalizeEmail(req.Email)
	if err := fieldErrors(validate.Struct(req)); err != nil {
		return nil, err
	}
	admin := &model.Admin{Email: req.Email, Name: req.Name}
	if err := service.SetPassword(admin, req.Password); err != nil {
		return nil, err
	}
	return admin, nil
}

// LoadCredentials validates the shape of a login request.
func LoadCredentials(req dto.LoginRequest) (dto.LoginRequest, error) {
	req.Email = NormalizeEmail(req.Email)
	if err := fieldErrors(validate.Struct(req)); err != nil {
		return dto.LoginRequest{}, err
	}
	return req, nil
}

// LoadAdminPartial validates only the keys present in raw and returns the
// column values to update. A password is re-hashed into password_hash.
func LoadAdminPartial(raw []byte) (map[string]any, error) {
	var req dto.RegisterRequest
	present, err := decodePartial(raw, &req, adminFields)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if len(present) == 0 {
		return out, nil
	}

	req.Email = NormalizeEmail(req.Email)
	if err := fieldErrors(validate.StructPartial(req, goNames(present, adminFields)...)); err != nil {
		return nil, err
	}
	for _, key := range present {
		switch key {
		case "email":
			out["email"] = req.Email
		case "name":
			out["name"] = req.Name
		case "password":
			hash, err := service.HashPassword(req.Password)
			if err != nil {
				return nil, err
			}
			out["password_hash"] = hash
		}
	}
	return out, nil
}

// decodePartial decodes raw into dst and returns the known keys that were present.
func decodePartial(raw []byte, dst any, known map[string]string) ([]string, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, BindError(err)
	}
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(dst); err != nil {
		return nil, BindError(err)
	}
	present := make([]string, 0, len(keys))
	for key := range known {
		if _, ok := keys[key]; ok {
			present = append(present, key)
		}
	}
	return present, nil
}

func goNames(keys []string, known map[string]string) []string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = known[k]
	}
	return names
}
