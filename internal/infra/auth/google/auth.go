package google

import (
	"strings"

	"himart/internal/domain/entity"
	"himart/internal/domain/service"

	"google.golang.org/api/idtoken"
)

// identityFromPayload maps verified ID token claims onto the provider-neutral identity.
func identityFromPayload(payload *idtoken.Payload) *service.ExternalIdentity {
	return &service.ExternalIdentity{
		Provider:      entity.ProviderGoogle,
		Subject:       payload.Subject,
		Email:         claimString(payload.Claims, "email"),
		EmailVerified: claimBool(payload.Claims, "email_verified"),
		FirstName:     claimString(payload.Claims, "given_name"),
		LastName:      claimString(payload.Claims, "family_name"),
		Picture:       claimString(payload.Claims, "picture"),
	}
}

func claimString(claims map[string]any, key string) string {
	v, _ := claims[key].(string)

	return v
}

// claimBool accepts both JSON booleans and the "true"/"false" strings some issuers emit.
func claimBool(claims map[string]any, key string) bool {
	switch v := claims[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}
