package telemetry

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/gorm"
)

// RegisterDBTracing adds a span for every GORM statement. Query variables
// are left out of the recorded SQL.
func RegisterDBTracing(db *gorm.DB, dbName string) error {
	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName(dbName),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return fmt.Errorf("failed to register otelgorm: %w", err)
	}
	return nil
}
