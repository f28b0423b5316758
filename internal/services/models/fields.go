package models

import (
	dErrors "selfservice/pkg/domain-errors"
)

// Field names an editable integration configuration field. Values match the
// path segment used by the change pages.
type Field string

const (
	FieldName                   Field = "name"
	FieldClientID               Field = "clientId"
	FieldContacts               Field = "contacts"
	FieldRedirectURIs           Field = "redirectUris"
	FieldPostLogoutRedirectURIs Field = "postLogoutRedirectUris"
	FieldScopes                 Field = "scopes"
	FieldAuthMethod             Field = "authMethod"
	FieldIDTokenAlg             Field = "idTokenAlg"
	FieldPublicKey              Field = "publicKey"
)

// InputType selects the form control for a field.
type InputType string

const (
	InputText     InputType = "text"
	InputTextarea InputType = "textarea"
)

// FieldSpec describes how a field is presented on its change page.
type FieldSpec struct {
	Field Field
	Label string
	Input InputType
}

var fieldSpecs = map[Field]FieldSpec{
	FieldName:                   {FieldName, "Name", InputText},
	FieldClientID:               {FieldClientID, "Client ID", InputText},
	FieldContacts:               {FieldContacts, "Contacts", InputText},
	FieldRedirectURIs:           {FieldRedirectURIs, "Redirect URIs (one per line)", InputTextarea},
	FieldPostLogoutRedirectURIs: {FieldPostLogoutRedirectURIs, "Post logout redirect URIs (one per line)", InputTextarea},
	FieldScopes:                 {FieldScopes, "Scopes (comma separated)", InputText},
	FieldAuthMethod:             {FieldAuthMethod, "Authentication method", InputText},
	FieldIDTokenAlg:             {FieldIDTokenAlg, "ID token signing algorithm", InputText},
	FieldPublicKey:              {FieldPublicKey, "Public key", InputTextarea},
}

// LookupField returns the presentation spec for an editable field.
func LookupField(name string) (FieldSpec, bool) {
	spec, ok := fieldSpecs[Field(name)]
	return spec, ok
}

// ParseField validates a field name taken from a URL.
func ParseField(name string) (Field, error) {
	if _, ok := fieldSpecs[Field(name)]; !ok {
		return "", errUnknownField(Field(name))
	}
	return Field(name), nil
}

func errUnknownField(field Field) error {
	return dErrors.New(dErrors.CodeInvalidInput, "unknown configuration field: "+string(field))
}
