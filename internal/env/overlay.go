package env

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Ошибки разбора биндингов.
var (
	// ErrMalformedBinding — биндинг не имеет вида NAME=value или NAME+TAG=value.
	ErrMalformedBinding = errors.New("malformed env binding")
)

// Binding — один разобранный биндинг overlay.
//
// Поддерживаются две формы:
//
//	NAME=value      — обычная подстановка: затеняет NAME.
//	NAME+TAG=value  — аддитивная: value добавляется в начало path-подобной
//	                  переменной NAME через os.PathListSeparator, не затирая
//	                  вклад внешних overlays и ambient-окружения.
//
// TAG различает вклады разных overlays в одну переменную и на результат
// не влияет. Значение может содержать $VAR/${VAR} — раскрывается по
// действующему окружению в момент применения.
type Binding struct {
	// Name — имя переменной окружения.
	Name string

	// Value — сырое значение (до раскрытия $VAR).
	Value string

	// Additive — true для формы NAME+TAG=value.
	Additive bool
}

// ParseBinding разбирает строку биндинга.
func ParseBinding(s string) (Binding, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return Binding{}, fmt.Errorf("%w: %q", ErrMalformedBinding, s)
	}

	if base, _, additive := strings.Cut(name, "+"); additive {
		if base == "" {
			return Binding{}, fmt.Errorf("%w: %q", ErrMalformedBinding, s)
		}
		return Binding{Name: base, Value: value, Additive: true}, nil
	}

	return Binding{Name: name, Value: value}, nil
}

// Stack — стек overlays одного track.
//
// Stack принадлежит ровно одному ExecutionContext и используется только
// из горутины этого track, поэтому не синхронизируется.
type Stack struct {
	overlays [][]Binding
}

// NewStack создаёт пустой стек overlays.
func NewStack() *Stack {
	return &Stack{}
}

// Depth возвращает количество overlays в области видимости.
func (s *Stack) Depth() int {
	return len(s.overlays)
}

// Apply применяет overlay к блоку работы.
//
// Биндинги кладутся на стек перед вызовом body и снимаются после него
// на любом пути выхода, включая ошибку body (scoped acquisition/release).
// Возвращает ошибку разбора биндингов либо ошибку body.
func (s *Stack) Apply(bindings []string, body func() error) error {
	overlay := make([]Binding, 0, len(bindings))
	for _, raw := range bindings {
		b, err := ParseBinding(raw)
		if err != nil {
			return err
		}
		overlay = append(overlay, b)
	}

	s.overlays = append(s.overlays, overlay)
	defer func() {
		s.overlays = s.overlays[:len(s.overlays)-1]
	}()

	return body()
}

// Environ вычисляет действующее окружение: base, объединённый со всеми
// overlays стека снизу вверх. Порядок переменных base сохраняется,
// новые переменные добавляются в конец.
func (s *Stack) Environ(base []string) []string {
	result := make([]string, len(base))
	copy(result, base)

	index := make(map[string]int, len(result))
	for i, kv := range result {
		if name, _, ok := strings.Cut(kv, "="); ok {
			index[name] = i
		}
	}

	lookup := func(name string) string {
		if i, ok := index[name]; ok {
			_, v, _ := strings.Cut(result[i], "=")
			return v
		}
		return ""
	}

	for _, overlay := range s.overlays {
		for _, b := range overlay {
			value := os.Expand(b.Value, lookup)

			if b.Additive {
				if existing := lookup(b.Name); existing != "" {
					value = value + string(os.PathListSeparator) + existing
				}
			}

			if i, ok := index[b.Name]; ok {
				result[i] = b.Name + "=" + value
			} else {
				result = append(result, b.Name+"="+value)
				index[b.Name] = len(result) - 1
			}
		}
	}

	return result
}

// Lookup возвращает действующее значение переменной name поверх base.
func (s *Stack) Lookup(base []string, name string) (string, bool) {
	for _, kv := range s.Environ(base) {
		if k, v, ok := strings.Cut(kv, "="); ok && k == name {
			return v, true
		}
	}
	return "", false
}
