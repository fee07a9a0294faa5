package validator

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// isUUID checks the canonical 36-character form with pre-validation to avoid
// expensive parsing.
func isUUID(value string) (uuid.UUID, bool) {
	if strings.TrimSpace(value) == "" || len(value) != 36 {
		return uuid.Nil, false
	}

	if value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(value)
	return id, err == nil
}

// uuidRule accepts uuid.UUID values and canonical strings. An optional
// parameter pins the UUID version; the nil UUID never passes.
func uuidRule(_ context.Context, in *Input) error {
	var id uuid.UUID
	switch v := in.Value.(type) {
	case uuid.UUID:
		id = v
	case string:
		parsed, ok := isUUID(v)
		if !ok {
			return Violation("validation.uuid", nil)
		}
		id = parsed
	default:
		return Violation("validation.uuid", nil)
	}

	if id == uuid.Nil {
		return Violation("validation.uuid", nil)
	}

	if len(in.Params) > 0 {
		version, err := intParam(in, 0, "Uuid")
		if err != nil {
			return err
		}
		if int(id.Version()) != version {
			return Violation("validation.uuid_version", map[string]any{"version": version})
		}
	}
	return nil
}
