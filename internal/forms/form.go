package forms

import (
	"fmt"
	"sync"
)

// FieldDef описание поля формы
type FieldDef struct {
	Name    string
	Label   string // подпись в сообщениях; по умолчанию Name
	Initial string
	Rules   []Rule
}

type field struct {
	def     FieldDef
	value   string
	dirty   bool
	touched bool
}

// Form набор полей с декларативными правилами.
// Ошибка поля показывается только после взаимодействия (dirty или touched).
type Form struct {
	mu     sync.RWMutex
	fields map[string]*field
	order  []string
}

// New создает форму. Поля с одинаковыми именами не допускаются.
func New(defs ...FieldDef) *Form {
	f := &Form{fields: make(map[string]*field, len(defs))}
	for _, def := range defs {
		if _, exists := f.fields[def.Name]; exists {
			panic(fmt.Sprintf("forms: duplicate field %q", def.Name))
		}
		if def.Label == "" {
			def.Label = def.Name
		}
		f.fields[def.Name] = &field{def: def, value: def.Initial}
		f.order = append(f.order, def.Name)
	}
	return f
}

// Fields имена полей в порядке объявления
func (f *Form) Fields() []string {
	return append([]string(nil), f.order...)
}

// Label подпись поля
func (f *Form) Label(name string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if fl, ok := f.fields[name]; ok {
		return fl.def.Label
	}
	return name
}

// Set записывает значение пользователя и помечает поле изменённым
func (f *Form) Set(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fl, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	fl.value = value
	fl.dirty = true
	return nil
}

// Patch записывает значение без пометки dirty (программное заполнение)
func (f *Form) Patch(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fl, ok := f.fields[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	fl.value = value
	return nil
}

// Value текущее значение поля
func (f *Form) Value(name string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if fl, ok := f.fields[name]; ok {
		return fl.value
	}
	return ""
}

// Values значения всех полей
func (f *Form) Values() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	values := make(map[string]string, len(f.fields))
	for name, fl := range f.fields {
		values[name] = fl.value
	}
	return values
}

// Touch помечает поле как посещённое (blur)
func (f *Form) Touch(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fl, ok := f.fields[name]; ok {
		fl.touched = true
	}
}

// MarkAllTouched делает видимыми ошибки всех полей
func (f *Form) MarkAllTouched() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fl := range f.fields {
		fl.touched = true
	}
}

// Reset возвращает начальные значения и снимает пометки взаимодействия
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fl := range f.fields {
		fl.value = fl.def.Initial
		fl.dirty = false
		fl.touched = false
	}
}

// Valid все поля проходят проверку
func (f *Form) Valid() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, name := range f.order {
		if f.fields[name].firstError() != "" {
			return false
		}
	}
	return true
}

// FieldError первая ошибка поля независимо от взаимодействия
func (f *Form) FieldError(name string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if fl, ok := f.fields[name]; ok {
		return fl.firstError()
	}
	return ""
}

// DisplayError ошибка поля для показа: пустая, пока с полем не взаимодействовали
func (f *Form) DisplayError(name string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	fl, ok := f.fields[name]
	if !ok || !(fl.dirty || fl.touched) {
		return ""
	}
	return fl.firstError()
}

// IsFieldInvalid поле невалидно и с ним уже взаимодействовали
func (f *Form) IsFieldInvalid(name string) bool {
	return f.DisplayError(name) != ""
}

// Errors видимые ошибки всех полей в порядке объявления
func (f *Form) Errors() []FieldError {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var errs []FieldError
	for _, name := range f.order {
		fl := f.fields[name]
		if !(fl.dirty || fl.touched) {
			continue
		}
		if msg := fl.firstError(); msg != "" {
			errs = append(errs, FieldError{Field: name, Message: msg})
		}
	}
	return errs
}

// FieldError ошибка проверки поля
type FieldError struct {
	Field   string
	Message string
}

func (fl *field) firstError() string {
	for _, rule := range fl.def.Rules {
		if msg := rule(fl.def.Label, fl.value); msg != "" {
			return msg
		}
	}
	return ""
}
