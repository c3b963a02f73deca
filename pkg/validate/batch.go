package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/flowers/internal/domain"
	"github.com/Gunvolt24/flowers/internal/ports"
)

// InputFormat — формат пакета заказов.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"  // один заказ или массив заказов (как отдаёт GET /orders)
	FormatJSONL InputFormat = "jsonl" // по заказу на строку
)

// maxLineSize — предел длины одной строки JSONL.
const maxLineSize = 10 << 20

// Sink — куда уходит каждый валидный заказ (stdout, брокер).
type Sink func(ctx context.Context, order *domain.Order) error

// Problem — отклонённая запись пакета. Record — номер строки JSONL или позиция в массиве (с 1).
type Problem struct {
	Record   int
	OrderUID string
	Reason   string
}

// Report — итог проверки пакета.
type Report struct {
	Valid    int
	Invalid  int
	Problems []Problem
}

func (r Report) String() string {
	return fmt.Sprintf("%d valid / %d invalid", r.Valid, r.Invalid)
}

// ResolveFormat — для auto формат берётся из расширения файла; неизвестное расширение считается JSON.
func ResolveFormat(path string, format InputFormat) (InputFormat, error) {
	switch format {
	case FormatJSON, FormatJSONL:
		return format, nil
	case FormatAuto, "":
		if strings.EqualFold(filepath.Ext(path), ".jsonl") {
			return FormatJSONL, nil
		}
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// JSONLSink — пишет каждый валидный заказ компактным JSON в отдельной строке.
func JSONLSink(w io.Writer) Sink {
	enc := json.NewEncoder(w)
	return func(_ context.Context, order *domain.Order) error {
		return enc.Encode(order)
	}
}

// Batch — проверка пакета заказов: невалидные записи попадают в отчёт, валидные передаются в sink.
// Ошибка sink прерывает обработку.
type Batch struct {
	validator ports.OrderValidator
	sink      Sink
}

func NewBatch(validator ports.OrderValidator, sink Sink) *Batch {
	return &Batch{validator: validator, sink: sink}
}

// File — пакет из файла.
func (b *Batch) File(ctx context.Context, path string, format InputFormat) (Report, error) {
	format, err := ResolveFormat(path, format)
	if err != nil {
		return Report{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return b.Stream(ctx, f, format)
}

// Stream — пакет из reader'а в заданном формате (auto здесь означает JSON).
func (b *Batch) Stream(ctx context.Context, r io.Reader, format InputFormat) (Report, error) {
	switch format {
	case FormatJSONL:
		return b.jsonl(ctx, r)
	case FormatJSON, FormatAuto, "":
		return b.json(ctx, r)
	default:
		return Report{}, fmt.Errorf("unsupported format: %s", format)
	}
}

func (b *Batch) json(ctx context.Context, r io.Reader) (Report, error) {
	var rep Report
	raw, err := io.ReadAll(r)
	if err != nil {
		return rep, fmt.Errorf("read input: %w", err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return rep, b.record(ctx, &rep, 1, raw)
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return rep, fmt.Errorf("invalid json array: %w", err)
	}
	for i, item := range list {
		if err := b.record(ctx, &rep, i+1, item); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

func (b *Batch) jsonl(ctx context.Context, r io.Reader) (Report, error) {
	var rep Report
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		if err := b.record(ctx, &rep, line, raw); err != nil {
			return rep, err
		}
	}
	if err := scanner.Err(); err != nil {
		return rep, fmt.Errorf("scan line %d: %w", line+1, err)
	}
	return rep, nil
}

// record — одна запись; возвращает ошибку только если её не удалось отдать в sink.
func (b *Batch) record(ctx context.Context, rep *Report, n int, raw []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	order, err := DecodeOrder(raw)
	if err != nil {
		rep.reject(n, "", "invalid json: "+err.Error())
		return nil
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusNew
	}
	if err := b.validator.Validate(ctx, order); err != nil {
		rep.reject(n, order.OrderUID, err.Error())
		return nil
	}

	if err := b.sink(ctx, order); err != nil {
		return fmt.Errorf("record %d order_uid=%s: %w", n, order.OrderUID, err)
	}
	rep.Valid++
	return nil
}

func (r *Report) reject(n int, uid, reason string) {
	r.Invalid++
	r.Problems = append(r.Problems, Problem{Record: n, OrderUID: uid, Reason: reason})
}
