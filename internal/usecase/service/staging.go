package service

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// stagedFile - временная копия входящего файла, живёт в пределах одного запроса
type stagedFile struct {
	file *os.File
	size int64
}

// stageUpload копирует поток целиком во временный файл с тем же расширением, что и у исходного.
// При ошибке временный файл сразу удаляется.
func stageUpload(dir string, src io.Reader, fileName string) (*stagedFile, error) {
	// '*' в шаблоне CreateTemp заменяется случайной строкой, в расширении он не нужен
	ext := strings.ReplaceAll(filepath.Ext(filepath.Base(fileName)), "*", "")
	file, err := os.CreateTemp(dir, "upload-*"+ext)
	if err != nil {
		return nil, err
	}
	staged := &stagedFile{file: file}

	staged.size, err = io.Copy(file, src)
	if err == nil {
		_, err = file.Seek(0, io.SeekStart)
	}
	if err != nil {
		return nil, errors.Join(err, staged.Close())
	}
	return staged, nil
}

func (s *stagedFile) Path() string {
	return s.file.Name()
}

// Close закрывает и удаляет временный файл
func (s *stagedFile) Close() error {
	closeErr := s.file.Close()
	removeErr := os.Remove(s.file.Name())
	if errors.Is(removeErr, os.ErrNotExist) {
		removeErr = nil
	}
	return errors.Join(closeErr, removeErr)
}
