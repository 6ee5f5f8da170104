package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// CatalogSnapshot - неизменяемый срез каталога станций и округов.
// При перезагрузке создаётся новый snapshot, старый продолжает
// использоваться уже запущенными вычислениями.
type CatalogSnapshot struct {
	Version   uuid.UUID
	LoadedAt  time.Time
	Stations  []Station
	Districts map[string]*District
	// Skipped - строки, отброшенные при загрузке из-за невалидных координат
	Skipped int
}

// DistrictNames возвращает имена округов в алфавитном порядке
func (s *CatalogSnapshot) DistrictNames() []string {
	names := make([]string, 0, len(s.Districts))
	for name := range s.Districts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Operators возвращает уникальных операторов в алфавитном порядке
func (s *CatalogSnapshot) Operators() []string {
	seen := make(map[string]struct{})
	for _, st := range s.Stations {
		seen[st.Operator] = struct{}{}
	}
	ops := make([]string, 0, len(seen))
	for op := range seen {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}
