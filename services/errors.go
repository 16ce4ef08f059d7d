package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	// สถานะออเดอร์ไม่ตรงกับที่ transition คาด (มีคนแซงไปก่อน หรือข้าม step)
	ErrConflict = errors.New("invalid_or_conflict")
)

// ValidationError รวม error รายฟิลด์ ตอบกลับเป็น 400 ทั้งก้อน
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
