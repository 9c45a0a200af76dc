package fallback

// Result хранит значение внешнего вызова и признак деградации.
// При ошибке Value содержит значение по умолчанию, а Err причину.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok возвращает успешный результат
func Ok[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

// Degrade возвращает результат со значением по умолчанию и исходной ошибкой
func Degrade[T any](def T, err error) Result[T] {
	return Result[T]{Value: def, Err: err}
}

// Degraded сообщает, было ли значение заменено значением по умолчанию
func (r Result[T]) Degraded() bool {
	return r.Err != nil
}
