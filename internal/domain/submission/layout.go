package submission

// Cell is a zero-based sheet coordinate with its A1 reference for messages.
type Cell struct {
	Row int
	Col int
	Ref string
}

// Scan accumulates consecutive non-empty cells in one column, from StartRow
// up to (not including) Ceiling.
type Scan struct {
	Col      int
	StartRow int
	Ceiling  int
}

// LabelScan finds the first row in [FromRow, ToRow] whose cell in LabelCol
// contains Marker, then scans Content starting on the row below.
type LabelScan struct {
	LabelCol int
	FromRow  int
	ToRow    int
	Marker   string
	Content  Scan
}

// Layout describes where each field lives on the request sheet.
type Layout struct {
	SheetName string
	Cells     map[FieldName]Cell
	Scans     map[FieldName]Scan
	Labelled  map[FieldName]LabelScan
	Labels    map[FieldName]string
}

const DefaultSheetName = "Solicitud de Pruebas V4"

// DefaultLayout is version 4 of the test request form.
func DefaultLayout() Layout {
	return Layout{
		SheetName: DefaultSheetName,
		Cells: map[FieldName]Cell{
			FieldClient:          {Row: 4, Col: 2, Ref: "C5"},
			FieldProject:         {Row: 4, Col: 7, Ref: "H5"},
			FieldTestType:        {Row: 7, Col: 3, Ref: "D8"},
			FieldRequester:       {Row: 11, Col: 3, Ref: "D12"},
			FieldProjectLead:     {Row: 11, Col: 9, Ref: "J12"},
			FieldApplicationType: {Row: 16, Col: 3, Ref: "D17"},
			FieldVersion:         {Row: 16, Col: 12, Ref: "M17"},
		},
		Scans: map[FieldName]Scan{
			FieldReleaseFunctionality: {Col: 3, StartRow: 19, Ceiling: 21},
			FieldChangeDetail:         {Col: 3, StartRow: 21, Ceiling: 30},
		},
		Labelled: map[FieldName]LabelScan{
			FieldChangeJustification: {
				LabelCol: 2,
				FromRow:  21,
				ToRow:    29,
				Marker:   "Justificación",
				Content:  Scan{Col: 3, Ceiling: 40},
			},
		},
		Labels: map[FieldName]string{
			FieldClient:               "Cliente",
			FieldProject:              "Proyecto",
			FieldTestType:             "Tipo de pruebas",
			FieldRequester:            "Responsable de la solicitud",
			FieldProjectLead:          "Líder de proyecto",
			FieldApplicationType:      "Tipo de aplicación",
			FieldVersion:              "Número de versión",
			FieldReleaseFunctionality: "Funcionalidad de la liberación",
			FieldChangeDetail:         "Detalle de cambios",
			FieldChangeJustification:  "Justificación del cambio",
		},
	}
}

// WithSheetName returns a copy that reads from another sheet title.
func (l Layout) WithSheetName(name string) Layout {
	if name != "" {
		l.SheetName = name
	}
	return l
}

func (l Layout) Label(f FieldName) string {
	if s, ok := l.Labels[f]; ok {
		return s
	}
	return string(f)
}

// CellRef is the A1 reference of a single-cell field, or "" for scanned ones.
func (l Layout) CellRef(f FieldName) string {
	return l.Cells[f].Ref
}
