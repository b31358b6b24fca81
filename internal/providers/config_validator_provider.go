package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"mpsd/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("config validation failed: %s", v.Errors.One())
	}

	seen := make(map[string]struct{}, len(cv.conf.Collector.Games))
	for _, g := range cv.conf.Collector.Games {
		if g.ID == "" {
			return fmt.Errorf("config validation failed: game entry missing id")
		}
		if _, dup := seen[g.ID]; dup {
			return fmt.Errorf("config validation failed: duplicate game id %q", g.ID)
		}
		seen[g.ID] = struct{}{}
	}
	if len(seen) == 0 {
		return fmt.Errorf("config validation failed: at least one game must be configured")
	}
	return nil
}
