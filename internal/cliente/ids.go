package cliente

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout é o formato histórico de criadoEm, ultimaAtualizacao e dos IDs legados.
const TimestampLayout = "2006-01-02T15:04:05.000000"

var (
	sequentialID = regexp.MustCompile(`^[0-9]+$`)
	isoTimestamp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}(:\d{2}(\.\d{1,9})?)?(Z|[+-]\d{2}:?\d{2})?$`)
	brTimestamp  = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}( \d{2}:\d{2}(:\d{2})?)?$`)
)

// IsSequentialID informa se id está no formato atual (inteiro decimal).
func IsSequentialID(id string) bool {
	return sequentialID.MatchString(strings.TrimSpace(id))
}

// IsLegacyID informa se id está no formato antigo (timestamp ISO-8601).
func IsLegacyID(id string) bool {
	return isoTimestamp.MatchString(strings.TrimSpace(id))
}

// IsTimestamp aceita ISO-8601 e o formato dd/mm/aaaa usado em linhas digitadas à mão.
func IsTimestamp(v string) bool {
	v = strings.TrimSpace(v)
	return isoTimestamp.MatchString(v) || brTimestamp.MatchString(v)
}

// SequentialNumber devolve o valor numérico de um ID sequencial.
func SequentialNumber(id string) (int64, bool) {
	if !IsSequentialID(id) {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatTimestamp formata t no layout histórico.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
