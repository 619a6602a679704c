package constants

// Field identifies one of the administrative fields extracted from an
// exam document. The set is closed; candidate lists, defaults and
// highlight colors are all keyed by it.
type Field string

const (
	FieldIdentityNumber Field = "identity_number"
	FieldPersonName     Field = "person_name"
	FieldOrganization   Field = "organization"
	FieldExamType       Field = "exam_type"
	FieldDate           Field = "date"
)

// Fields lists every field in a stable order (extraction and display order).
var Fields = []Field{
	FieldIdentityNumber,
	FieldPersonName,
	FieldOrganization,
	FieldExamType,
	FieldDate,
}

// FieldColors maps each field to its highlight color for previews.
var FieldColors = map[Field]string{
	FieldIdentityNumber: "#ff6b6b",
	FieldPersonName:     "#4ecdc4",
	FieldOrganization:   "#45b7d1",
	FieldExamType:       "#f7b731",
	FieldDate:           "#5f27cd",
}
