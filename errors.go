package greenzone

import (
	"strings"

	"github.com/sirkon/errors"
)

// ErrNotFound отдаётся хранилищами при запросе отсутствующей или уже освобождённой записи.
const ErrNotFound errors.Const = "secondary store entry not found"

// ErrorCode коды ошибок кэша слепков.
type ErrorCode int32

const (
	// CodeUnknown ошибка не относится к кэшу.
	CodeUnknown ErrorCode = 0

	// CodeIO ошибка чтения, записи или удаления во вторичном хранилище.
	CodeIO ErrorCode = 1000

	// CodeIDExhausted исчерпано пространство идентификаторов записей.
	CodeIDExhausted ErrorCode = 2000

	// CodeInvalidCapacity ожидаемый размер слепка не представим во вторичном хранилище.
	CodeInvalidCapacity ErrorCode = 3000

	// CodeCorruptData повреждённые данные при восстановлении из проекта.
	CodeCorruptData ErrorCode = 4000
)

func (c ErrorCode) String() string {
	switch c {
	case CodeIO:
		return "IO_ERROR"
	case CodeIDExhausted:
		return "ID_EXHAUSTED"
	case CodeInvalidCapacity:
		return "INVALID_CAPACITY"
	case CodeCorruptData:
		return "CORRUPT_DATA"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Error ошибка кэша с кодом.
type Error struct {
	Code ErrorCode
	Msg  string

	err error
}

func (e Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Code.String())
	if e.Msg != "" {
		b.WriteByte('[')
		b.WriteString(e.Msg)
		b.WriteByte(']')
	}
	if e.err != nil {
		b.WriteString(": ")
		b.WriteString(e.err.Error())
	}

	return b.String()
}

// Unwrap для работы errors.Is и errors.As с исходной ошибкой.
func (e Error) Unwrap() error {
	return e.err
}

// AsCode получить код соответствующий ошибке. Ошибки не имеющие
// отношения к кэшу дают CodeUnknown.
func AsCode(err error) ErrorCode {
	var target Error
	if !errors.As(err, &target) {
		return CodeUnknown
	}

	return target.Code
}

func errorIO(err error, msg string) error {
	return Error{
		Code: CodeIO,
		Msg:  msg,
		err:  err,
	}
}

func errorInvalidCapacity(msg string) error {
	return Error{
		Code: CodeInvalidCapacity,
		Msg:  msg,
	}
}

func errorCorruptData(msg string, err error) error {
	return Error{
		Code: CodeCorruptData,
		Msg:  msg,
		err:  err,
	}
}
