package api

import (
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
)

// normalizeTimestamps recursively renames GORM timestamp keys from CamelCase
// (CreatedAt, UpdatedAt, DeletedAt) to snake_case keys (created_at,
// updated_at, deleted_at) so frontend clients consistently receive
// snake_case timestamps.
func normalizeTimestamps(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeTimestamps(val)
		}
		if val, ok := vv["CreatedAt"]; ok {
			vv["created_at"] = val
			delete(vv, "CreatedAt")
		}
		if val, ok := vv["UpdatedAt"]; ok {
			vv["updated_at"] = val
			delete(vv, "UpdatedAt")
		}
		if val, ok := vv["DeletedAt"]; ok {
			vv["deleted_at"] = val
			delete(vv, "DeletedAt")
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeTimestamps(vv[i])
		}
		return vv
	default:
		return v
	}
}

// MarshalIntoSnakeTimestamps marshals the given value into JSON, then
// decodes into an interface{} and normalizes timestamp keys to snake_case.
func MarshalIntoSnakeTimestamps(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return normalizeTimestamps(out), nil
}

// MarshalForContext behaves like MarshalIntoSnakeTimestamps but also redacts
// email fields that do not belong to the authenticated session user, so
// other players' emails are never exposed through collection or battle
// listings.
func MarshalForContext(c *gin.Context, v interface{}) (interface{}, error) {
	out, err := MarshalIntoSnakeTimestamps(v)
	if err != nil {
		return nil, err
	}
	currentEmail := ""
	if c != nil {
		if v, ok := c.Get("userEmail"); ok {
			if s, _ := v.(string); s != "" {
				currentEmail = s
			}
		}
	}
	redactEmails(out, currentEmail)
	return out, nil
}

// redactEmails walks a marshalled JSON structure and removes any field whose
// key contains "email" (case-insensitive) unless its value equals
// currentEmail.
func redactEmails(v interface{}, currentEmail string) {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			if strings.Contains(strings.ToLower(k), "email") {
				if s, ok := val.(string); ok && currentEmail != "" && s == currentEmail {
					continue
				}
				delete(vv, k)
				continue
			}
			redactEmails(val, currentEmail)
		}
	case []interface{}:
		for i := range vv {
			redactEmails(vv[i], currentEmail)
		}
	}
}
