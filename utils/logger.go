package utils

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Hasta que se llame a InicializarLogger los loggers descartan todo
var (
	InfoLog  = slog.New(slog.NewTextHandler(io.Discard, nil))
	ErrorLog = InfoLog
)

// InicializarLogger configura los loggers globales
func InicializarLogger(logLevel string, moduleName string, salida io.Writer) {
	if salida == nil {
		salida = os.Stderr
	}

	handler := slog.NewTextHandler(salida, &slog.HandlerOptions{
		Level: ParsearNivel(logLevel),
	})

	logger := slog.New(handler).With("modulo", moduleName)

	InfoLog = logger
	ErrorLog = logger
}

// ParsearNivel traduce el LOG_LEVEL de la configuración a un nivel de slog
func ParsearNivel(logLevel string) slog.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// AbrirSalidaLog abre el archivo de log en modo append, o devuelve porDefecto si la ruta está vacía.
// Cerrar porDefecto no hace nada.
func AbrirSalidaLog(ruta string, porDefecto io.Writer) (io.WriteCloser, error) {
	if ruta == "" {
		return nopCloser{porDefecto}, nil
	}
	return os.OpenFile(ruta, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
