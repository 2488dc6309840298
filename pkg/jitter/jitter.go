// Package jitter добавляет случайный разброс к интервалам: к задержкам повторов
// и к расписанию уведомлений витрины.
package jitter

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMutex  sync.Mutex
)

// Source — минимальный источник случайных чисел, который можно подменить в тестах.
type Source interface {
	Float64() float64
}

// lockedSource сериализует доступ к глобальному генератору.
type lockedSource struct{}

func (lockedSource) Float64() float64 {
	randMutex.Lock()
	defer randMutex.Unlock()
	return globalRand.Float64()
}

// Global возвращает потокобезопасный источник на базе глобального генератора.
func Global() Source {
	return lockedSource{}
}

// Duration возвращает продолжительность с применённым джиттером.
// Результат находится в диапазоне [d, d*(1+jitterFactor)].
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	return DurationWithSource(d, jitterFactor, Global())
}

// DurationWithSource работает как Duration, но с заданным источником случайности.
func DurationWithSource(d time.Duration, jitterFactor float64, src Source) time.Duration {
	return d + time.Duration(src.Float64()*jitterFactor*float64(d))
}

// Symmetric возвращает d, смещённую на случайную величину из [-spread, +spread).
// Отрицательный результат обрезается до нуля.
func Symmetric(d, spread time.Duration, src Source) time.Duration {
	offset := time.Duration(src.Float64()*float64(2*spread)) - spread
	if res := d + offset; res > 0 {
		return res
	}

	return 0
}

// ExponentialBackoff вычисляет экспоненциальное отступление с джиттером.
// attempt — номер попытки с нуля, результат не превышает ceiling до применения джиттера.
func ExponentialBackoff(base, ceiling time.Duration, attempt int, jitterFactor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff > ceiling {
			backoff = ceiling
			break
		}
	}
	return Duration(backoff, jitterFactor)
}
