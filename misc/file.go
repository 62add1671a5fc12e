package misc

import (
	"errors"
	"fmt"
	"os"
)

func ReadFile(fileName string) ([]byte, error) {
	if fileName == "" {
		return []byte{}, errors.New("no filename supplied")
	}
	fileBytes, err := os.ReadFile(fileName)
	if err != nil {
		return []byte{}, fmt.Errorf("unable to read %s - %w", fileName, err)
	}
	return fileBytes, nil
}

// WriteFile creates or truncates fileName. Contents are written to a temporary file first and renamed into place
// so readers never see a partial image.
func WriteFile(fileName string, contents []byte) (int, error) {
	if fileName == "" {
		return 0, errors.New("no filename supplied")
	}
	temporary := fileName + ".tmp"
	file, err := os.Create(temporary)
	if err != nil {
		return 0, fmt.Errorf("unable to create file %s - %w", temporary, err)
	}
	bytesWritten, err := file.Write(contents)
	if err != nil {
		file.Close()
		os.Remove(temporary)
		return bytesWritten, fmt.Errorf("unable to write file %s - %w", temporary, err)
	}
	if err = file.Close(); err != nil {
		os.Remove(temporary)
		return bytesWritten, fmt.Errorf("unable to close file %s - %w", temporary, err)
	}
	if err = os.Rename(temporary, fileName); err != nil {
		os.Remove(temporary)
		return bytesWritten, fmt.Errorf("unable to rename %s to %s - %w", temporary, fileName, err)
	}
	return bytesWritten, nil
}
