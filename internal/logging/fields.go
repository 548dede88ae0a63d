package logging

// Field names shared by all components.
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldMember    = "member_id"
	FieldEntry     = "entry_id"
	FieldFrom      = "from"
	FieldTo        = "to"
	FieldCount     = "count"
	FieldMonth     = "month"
	FieldPeriod    = "period"
	FieldVersion   = "version"
	FieldPath      = "path"
	FieldElapsed   = "elapsed_ms"
)

const (
	ComponentApp       = "app"
	ComponentCLI       = "cli"
	ComponentAPI       = "api"
	ComponentReporting = "reporting"
	ComponentStorage   = "storage"
	ComponentMigrate   = "migrate"
	ComponentConfig    = "config"
)
