package valueobjects

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultCompanyCode = "BID"
	MinConsecutive     = 1
	MaxConsecutive     = 999

	codeSegments = 7
)

// SequenceKey identifies one numbering partition. Consecutive numbers are
// unique within a key, and Version is the catalog id of the test type rather
// than a software version.
type SequenceKey struct {
	Empresa      string
	TipoServicio string
	Funcion      string
	Version      string
	Cliente      string
	Proyecto     string
}

// NewSequenceKey builds the canonical key for a resolved submission.
// serviceCode is the short form tag (e.g. PRU); testTypeCode and testTypeID
// come from the resolved service type.
func NewSequenceKey(company, serviceCode, testTypeCode string, testTypeID uint, clientCode, projectCode string) (SequenceKey, error) {
	k := SequenceKey{
		Empresa:      strings.ToUpper(strings.TrimSpace(company)),
		TipoServicio: strings.ToUpper(strings.TrimSpace(serviceCode)),
		Funcion:      strings.TrimSpace(testTypeCode),
		Version:      strconv.FormatUint(uint64(testTypeID), 10),
		Cliente:      strings.TrimSpace(clientCode),
		Proyecto:     strings.TrimSpace(projectCode),
	}
	if k.Empresa == "" {
		k.Empresa = DefaultCompanyCode
	}
	if testTypeID == 0 {
		return SequenceKey{}, fmt.Errorf("test type id is required")
	}
	return k, k.Validate()
}

func (k SequenceKey) segments() []string {
	return []string{k.Empresa, k.TipoServicio, k.Funcion, k.Version, k.Cliente, k.Proyecto}
}

func (k SequenceKey) Validate() error {
	names := []string{"empresa", "tipo_servicio", "funcion", "version", "cliente", "proyecto"}
	for i, seg := range k.segments() {
		if seg == "" {
			return fmt.Errorf("%s code is required", names[i])
		}
		if strings.Contains(seg, "-") {
			return fmt.Errorf("%s code cannot contain '-'", names[i])
		}
	}
	if len(k.TipoServicio) > 10 {
		return fmt.Errorf("tipo_servicio code cannot exceed 10 characters")
	}
	return nil
}

// String renders the key as the code prefix without the consecutive.
func (k SequenceKey) String() string {
	return strings.Join(k.segments(), "-")
}

// FormatCode renders BID-SVC-FUNC-VER-CLI-PROJ-NNN.
func FormatCode(k SequenceKey, consecutivo int) (string, error) {
	if err := ValidateConsecutive(consecutivo); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%03d", k.String(), consecutivo), nil
}

// ParseCode splits a ticket code back into its key and consecutive.
func ParseCode(code string) (SequenceKey, int, error) {
	parts := strings.Split(strings.TrimSpace(code), "-")
	if len(parts) != codeSegments {
		return SequenceKey{}, 0, fmt.Errorf("ticket code %q must have %d segments", code, codeSegments)
	}
	n, err := strconv.Atoi(parts[6])
	if err != nil || len(parts[6]) < 3 {
		return SequenceKey{}, 0, fmt.Errorf("ticket code %q has an invalid consecutive", code)
	}
	if err := ValidateConsecutive(n); err != nil {
		return SequenceKey{}, 0, err
	}
	k := SequenceKey{
		Empresa:      parts[0],
		TipoServicio: parts[1],
		Funcion:      parts[2],
		Version:      parts[3],
		Cliente:      parts[4],
		Proyecto:     parts[5],
	}
	if err := k.Validate(); err != nil {
		return SequenceKey{}, 0, err
	}
	return k, n, nil
}

func ValidateConsecutive(n int) error {
	if n < MinConsecutive || n > MaxConsecutive {
		return fmt.Errorf("consecutive must be between %d and %d, got %d", MinConsecutive, MaxConsecutive, n)
	}
	return nil
}
