package entity

import "io"

// MediaFile описывает файл, который отправляется во внешнее медиа-хранилище
type MediaFile struct {
	Reader      io.ReadSeeker
	Size        int64
	FileName    string
	ContentType string
	// Origin - метка источника загрузки, на выдачу файла не влияет
	Origin string
	// UniqueFileName просит хранилище самому подобрать уникальное имя
	UniqueFileName bool
}

// MediaObject - результат загрузки: публичная ссылка и имя, под которым файл сохранён
type MediaObject struct {
	URL      string
	FileName string
}
