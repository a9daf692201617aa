package masking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", MaskSecret("  "))
	assert.Equal(t, "****", MaskSecret("1234"))
	assert.Equal(t, "****4567", MaskSecret("C1234567"))
}

func TestMaskMetadata_RedactsOnlySensitiveKeys(t *testing.T) {
	masked := MaskMetadata(map[string]any{
		"pin":             "87654321",
		"passport_id":     "C1234567",
		"bank_account_no": "110-222-333",
		"name":            "NGUYEN VAN A",
		"attempt":         3,
		"nested": map[string]any{
			"pinCode": "87654321",
			"region":  "경기도",
		},
	})

	assert.Equal(t, "****4321", masked["pin"])
	assert.Equal(t, "****4567", masked["passport_id"])
	assert.Equal(t, "****-333", masked["bank_account_no"])
	assert.Equal(t, "NGUYEN VAN A", masked["name"])
	assert.Equal(t, 3, masked["attempt"])

	nested := masked["nested"].(map[string]any)
	assert.Equal(t, "****4321", nested["pinCode"])
	assert.Equal(t, "경기도", nested["region"])
}

func TestMaskMetadata_EmptyInput(t *testing.T) {
	assert.Nil(t, MaskMetadata(nil))
	assert.Nil(t, MaskMetadata(map[string]any{}))
}
