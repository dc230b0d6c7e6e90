package storage

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	"github.com/matst80/slask-catalog/pkg/types"
)

const ProductsFile = "products.jz"

func isGzipped(name string) bool {
	return strings.HasSuffix(name, ".jz") || strings.HasSuffix(name, ".gz")
}

// LoadProducts reads a product dataset, gzipped when the name ends with
// .jz or .gz and plain JSON otherwise.
func (d *DiskStorage) LoadProducts(name string) ([]types.ProductRecord, error) {
	products := make([]types.ProductRecord, 0)
	var err error
	if isGzipped(name) {
		err = d.LoadGzippedJson(&products, name)
	} else {
		err = d.LoadJson(&products, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load products from %s: %w", name, err)
	}
	return products, nil
}

func (d *DiskStorage) SaveProducts(products []types.ProductRecord, name string) error {
	if isGzipped(name) {
		return d.SaveGzippedJson(products, name)
	}
	return d.SaveJson(products, name)
}

func (d *DiskStorage) StreamContent(w io.Writer, fileName string) (int64, error) {
	osFileName, _ := d.GetFileName(fileName)
	file, err := os.Open(osFileName)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return file.WriteTo(w)
}

func (p *DiskStorage) SaveGzippedJson(data any, filename string) error {
	fileName, tmpFileName := p.GetFileName(filename)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}

	zipWriter := gzip.NewWriter(file)
	if err = jsoncompat.NewEncoder(zipWriter).Encode(data); err != nil {
		_ = zipWriter.Close()
		_ = file.Close()
		_ = os.Remove(tmpFileName)
		return err
	}

	if err = zipWriter.Close(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFileName)
		return err
	}

	if err = file.Close(); err != nil {
		_ = os.Remove(tmpFileName)
		return err
	}

	if err = os.Rename(tmpFileName, fileName); err != nil {
		log.Printf("Error renaming file: %v", err)
		_ = os.Remove(tmpFileName)
		return err
	}
	return nil
}

func (p *DiskStorage) LoadGzippedJson(data any, filename string) error {
	name, _ := p.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()

	err = jsoncompat.NewDecoder(zipReader).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func (p *DiskStorage) SaveJson(data any, name string) error {
	fileName, tmpFileName := p.GetFileName(name)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}

	err = jsoncompat.NewEncoder(file).Encode(data)
	file.Close()
	if err != nil {
		_ = os.Remove(tmpFileName)
		return err
	}

	return os.Rename(tmpFileName, fileName)
}

func (p *DiskStorage) LoadJson(data any, filename string) error {
	name, _ := p.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	err = jsoncompat.NewDecoder(file).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}
