package level

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateID produces a level identifier in the XXXX-XXXX-XXXX-XXXX
// form game clients display, from the leading 16 hex digits of a
// random UUID.
func GenerateID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:16]
	return fmt.Sprintf("%s-%s-%s-%s", raw[0:4], raw[4:8], raw[8:12], raw[12:16])
}
