/**
* Name:        credentials.go
* Description: Google 서비스 계정 인증 옵션 생성
* Workflow:    env JSON(base64 or raw) 우선, 없으면 credentials 파일 사용
 */

package gcp

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Scopes needed by the row store and the uploader.
var Scopes = []string{gsheets.SpreadsheetsScope, drive.DriveFileScope}

var requiredFields = []string{"type", "project_id", "private_key_id", "private_key", "client_email"}

var ErrNoCredentials = errors.New("no google credentials configured")

// ServiceAccount is the subset of a service account key file we inspect.
type ServiceAccount struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
}

// ClientOptions builds the option set shared by the Sheets and Drive clients.
// credentialsJSON (raw or base64) wins over credentialsFile.
func ClientOptions(credentialsJSON, credentialsFile string) ([]option.ClientOption, error) {
	opts := []option.ClientOption{option.WithScopes(Scopes...)}

	if strings.TrimSpace(credentialsJSON) != "" {
		raw, err := DecodeCredentialsJSON(credentialsJSON)
		if err != nil {
			log.Printf("ClientOptions(): failed to load credentials from env: %v", err)
			return nil, err
		}
		return append(opts, option.WithCredentialsJSON(raw)), nil
	}

	if credentialsFile == "" {
		return nil, ErrNoCredentials
	}
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, fmt.Errorf("ClientOptions(): credentials file %s: %w", credentialsFile, err)
	}
	return append(opts, option.WithCredentialsFile(credentialsFile)), nil
}

// DecodeCredentialsJSON accepts a raw or base64 encoded key file and returns
// normalized JSON. Escaped "\n" sequences in private_key are unescaped, which
// is how most hosting dashboards mangle multi-line env values.
func DecodeCredentialsJSON(value string) ([]byte, error) {
	value = strings.TrimSpace(value)
	if decoded, err := base64.StdEncoding.DecodeString(value); err == nil {
		if strings.HasPrefix(strings.TrimSpace(string(decoded)), "{") {
			value = string(decoded)
		}
	}

	var info map[string]any
	if err := json.Unmarshal([]byte(value), &info); err != nil {
		return nil, fmt.Errorf("DecodeCredentialsJSON(): invalid JSON: %w", err)
	}
	if key, ok := info["private_key"].(string); ok {
		info["private_key"] = strings.ReplaceAll(key, `\n`, "\n")
	}
	return json.Marshal(info)
}

// ValidateServiceAccount checks the fields every service account key carries.
func ValidateServiceAccount(raw []byte) (*ServiceAccount, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("ValidateServiceAccount(): invalid JSON: %w", err)
	}
	var missing []string
	for _, f := range requiredFields {
		if v, ok := fields[f].(string); !ok || v == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("ValidateServiceAccount(): missing required fields: %s", strings.Join(missing, ", "))
	}

	var sa ServiceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return nil, err
	}
	return &sa, nil
}

// LoadServiceAccount reads the key from env JSON or file, whichever is set.
func LoadServiceAccount(credentialsJSON, credentialsFile string) (*ServiceAccount, error) {
	var raw []byte
	var err error
	switch {
	case strings.TrimSpace(credentialsJSON) != "":
		raw, err = DecodeCredentialsJSON(credentialsJSON)
	case credentialsFile != "":
		raw, err = os.ReadFile(credentialsFile)
	default:
		return nil, ErrNoCredentials
	}
	if err != nil {
		return nil, err
	}
	return ValidateServiceAccount(raw)
}
