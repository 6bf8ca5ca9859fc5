package greenzone

//go:generate mockgen -destination=internal/mocks/collaborators.go -package=mocks . Emulator,Movie,SecondaryStore

// Emulator источник слепков состояния эмулируемой машины.
type Emulator interface {
	// SaveState выдаёт слепок текущего состояния машины. Кэш не удерживает
	// полученный буфер, а копирует его.
	SaveState() []byte
	// Frame номер текущего кадра эмуляции.
	Frame() int
	// IsLagged сообщает, что текущий кадр не потребил ввода.
	IsLagged() bool
}

// Movie журнал ввода со сведениями о кадрах.
type Movie interface {
	// IsLagFrame проверка, что на данном кадре машина не опрашивала ввод.
	IsLagFrame(frame int) bool
	// IsMarker проверка наличия пользовательской метки на кадре.
	IsMarker(frame int) bool
	// StartsFromSavestate сессия начинается с внешнего слепка, а не с включения питания.
	StartsFromSavestate() bool
	// AnchorState внешний слепок кадра 0 для сессий начинающихся со слепка.
	AnchorState() []byte
}

// SecondaryStore вторичное хранилище байтов ограниченной вместимости.
// Ключом служит идентификатор записи.
type SecondaryStore interface {
	// Store сохранение данных под ключом, существующие данные заменяются.
	Store(key uint64, data []byte) error
	// Fetch получение данных, ошибка оборачивает ErrNotFound если ключа нет.
	Fetch(key uint64) ([]byte, error)
	// Release освобождение данных ключа.
	Release(key uint64) error
	// Clear освобождение всех данных.
	Clear() error
	// Consumed объём занятый хранилищем.
	Consumed() uint64
}

// StoreOpener открывает вторичное хранилище для слепков ожидаемого размера.
type StoreOpener func(expectedSize int) (SecondaryStore, error)
