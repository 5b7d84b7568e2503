// Package storagetest содержит тестовые заглушки для репозиториев
package storagetest

import (
	"database/sql"
	"fmt"
	"reflect"
)

// Row строка результата, которая присваивает значения колонок по правилам database/sql:
// NULL допускается только в sql.Scanner и указатели
type Row struct {
	Values []interface{}
	Err    error
}

// NewRow создает строку с заданными значениями колонок; nil означает NULL
func NewRow(values ...interface{}) Row {
	return Row{Values: values}
}

// Scan реализует интерфейс *sql.Row
func (r Row) Scan(dest ...interface{}) error {
	if r.Err != nil {
		return r.Err
	}
	if len(dest) != len(r.Values) {
		return fmt.Errorf("expected %d destination arguments in Scan, not %d", len(r.Values), len(dest))
	}
	for i := range dest {
		if err := assignColumn(dest[i], r.Values[i]); err != nil {
			return fmt.Errorf("converting column index %d: %w", i, err)
		}
	}
	return nil
}

func assignColumn(dest, src interface{}) error {
	if scanner, ok := dest.(sql.Scanner); ok {
		return scanner.Scan(src)
	}

	dv := reflect.ValueOf(dest).Elem()
	if src == nil {
		if dv.Kind() == reflect.Ptr {
			dv.Set(reflect.Zero(dv.Type()))
			return nil
		}
		return fmt.Errorf("converting NULL to %s is unsupported", dv.Kind())
	}

	if dv.Kind() == reflect.Ptr {
		elem := reflect.New(dv.Type().Elem())
		if err := assignColumn(elem.Interface(), src); err != nil {
			return err
		}
		dv.Set(elem)
		return nil
	}

	sv := reflect.ValueOf(src)
	if !sv.Type().ConvertibleTo(dv.Type()) {
		return fmt.Errorf("unsupported Scan, storing %T into %s", src, dv.Type())
	}
	dv.Set(sv.Convert(dv.Type()))
	return nil
}
