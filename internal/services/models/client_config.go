package models

import (
	"slices"
	"strings"

	pstrings "selfservice/pkg/platform/strings"
)

const (
	ScopeOpenID = "openid"
	ScopeEmail  = "email"

	DefaultAuthMethod = "private_key_jwt"
	DefaultIDTokenAlg = "ES256"
)

// ClientConfig is the OAuth client metadata for one environment of a service.
//
// Invariants:
//   - Scopes always contains "openid"
//   - URI lists and Scopes hold no blank entries or duplicates
type ClientConfig struct {
	Name                   string   `json:"name"`
	ClientID               string   `json:"client_id"`
	Contacts               string   `json:"contacts"`
	RedirectURIs           []string `json:"redirect_uris"`
	PostLogoutRedirectURIs []string `json:"post_logout_redirect_uris"`
	Scopes                 []string `json:"scopes"`
	SectorIdentifierURI    string   `json:"sector_identifier_uri"`
	LandingPageURI         string   `json:"landing_page_uri"`
	AuthMethod             string   `json:"auth_method"`
	PublicKey              string   `json:"public_key"`
	IDTokenAlg             string   `json:"id_token_alg"`
	MaxAgeEnabled          bool     `json:"max_age_enabled"`
	ProveUsersIdentities   bool     `json:"prove_users_identities"`
	EnforcePKCE            bool     `json:"enforce_pkce"`
}

// NewClientConfig returns the configuration every new environment starts with.
func NewClientConfig(name string) ClientConfig {
	return ClientConfig{
		Name:                   name,
		RedirectURIs:           []string{},
		PostLogoutRedirectURIs: []string{},
		Scopes:                 []string{ScopeOpenID, ScopeEmail},
		AuthMethod:             DefaultAuthMethod,
		IDTokenAlg:             DefaultIDTokenAlg,
		EnforcePKCE:            true,
	}
}

// Set parses raw form input for field and overwrites it.
func (c *ClientConfig) Set(field Field, raw string) error {
	switch field {
	case FieldName:
		c.Name = raw
	case FieldClientID:
		c.ClientID = raw
	case FieldContacts:
		c.Contacts = raw
	case FieldRedirectURIs:
		c.RedirectURIs = pstrings.SplitLines(raw)
	case FieldPostLogoutRedirectURIs:
		c.PostLogoutRedirectURIs = pstrings.SplitLines(raw)
	case FieldScopes:
		c.Scopes = WithOpenID(pstrings.SplitList(raw))
	case FieldAuthMethod:
		c.AuthMethod = raw
	case FieldIDTokenAlg:
		c.IDTokenAlg = raw
	case FieldPublicKey:
		c.PublicKey = raw
	default:
		return errUnknownField(field)
	}
	return nil
}

// Value renders field back into the text the edit form shows: one entry per
// line for URI lists, comma separated for scopes.
func (c *ClientConfig) Value(field Field) (string, error) {
	switch field {
	case FieldName:
		return c.Name, nil
	case FieldClientID:
		return c.ClientID, nil
	case FieldContacts:
		return c.Contacts, nil
	case FieldRedirectURIs:
		return strings.Join(c.RedirectURIs, "\n"), nil
	case FieldPostLogoutRedirectURIs:
		return strings.Join(c.PostLogoutRedirectURIs, "\n"), nil
	case FieldScopes:
		return strings.Join(c.Scopes, ", "), nil
	case FieldAuthMethod:
		return c.AuthMethod, nil
	case FieldIDTokenAlg:
		return c.IDTokenAlg, nil
	case FieldPublicKey:
		return c.PublicKey, nil
	default:
		return "", errUnknownField(field)
	}
}

// HasScope reports whether scope is granted.
func (c *ClientConfig) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// WithOpenID returns scopes with "openid" first, keeping the remaining order
// and dropping repeats.
func WithOpenID(scopes []string) []string {
	return pstrings.DedupeAndTrim(append([]string{ScopeOpenID}, scopes...))
}

func (c ClientConfig) clone() ClientConfig {
	c.RedirectURIs = slices.Clone(c.RedirectURIs)
	c.PostLogoutRedirectURIs = slices.Clone(c.PostLogoutRedirectURIs)
	c.Scopes = slices.Clone(c.Scopes)
	return c
}
