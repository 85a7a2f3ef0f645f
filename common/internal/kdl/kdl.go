package kdl

import (
	"os"

	"github.com/sblinch/kdl-go"
)

// Unmarshal reads the KDL document at kdlPath over a copy of defaultCfg, so
// nodes absent from the file keep their default values.
func Unmarshal[T any](kdlPath string, defaultCfg T) (T, error) {
	var nilT T
	data, err := os.ReadFile(kdlPath)
	if err != nil {
		return nilT, err
	}
	return Decode(data, defaultCfg)
}

func Decode[T any](data []byte, defaultCfg T) (T, error) {
	var nilT T
	if err := kdl.Unmarshal(data, &defaultCfg); err != nil {
		return nilT, err
	}
	return defaultCfg, nil
}
