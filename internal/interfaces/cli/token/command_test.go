package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriplan/nutriplan/internal/infrastructure/auth"
	"github.com/nutriplan/nutriplan/internal/infrastructure/config"
	"github.com/nutriplan/nutriplan/internal/shared/authorization"
	sharedConfig "github.com/nutriplan/nutriplan/internal/shared/config"
)

func TestIssue_VerifiesWithSameConfig(t *testing.T) {
	cfg := &config.Config{Auth: sharedConfig.AuthConfig{JWT: sharedConfig.JWTConfig{
		Secret:           "dev-secret",
		Issuer:           "nutriplan",
		AccessExpMinutes: 10,
	}}}

	signed, _, err := Issue(cfg, 7, authorization.RoleAdmin)
	require.NoError(t, err)

	claims, err := auth.NewJWTService("dev-secret", "nutriplan", 10).Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, authorization.RoleAdmin, claims.Role)

	_, err = auth.NewJWTService("other-secret", "nutriplan", 10).Verify(signed)
	assert.Error(t, err)
}

func TestNewCommand_RequiresUserID(t *testing.T) {
	cmd := NewCommand()
	cmd.SetArgs([]string{"issue", "--role", "admin"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	assert.Error(t, cmd.Execute())
}
