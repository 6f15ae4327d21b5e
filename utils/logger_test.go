package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAbrirSalidaLog_SinRutaUsaPorDefecto(t *testing.T) {
	var buf bytes.Buffer
	salida, err := AbrirSalidaLog("", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	salida.Write([]byte("hola"))
	if err := salida.Close(); err != nil {
		t.Fatalf("closing the default writer must be a no-op: %v", err)
	}
	if buf.String() != "hola" {
		t.Fatalf("expected writes to reach the default writer, got %q", buf.String())
	}
}

func TestAbrirSalidaLog_Append(t *testing.T) {
	ruta := filepath.Join(t.TempDir(), "memoria.log")
	for _, linea := range []string{"uno\n", "dos\n"} {
		salida, err := AbrirSalidaLog(ruta, nil)
		if err != nil {
			t.Fatalf("AbrirSalidaLog failed: %v", err)
		}
		salida.Write([]byte(linea))
		salida.Close()
	}

	contenido, _ := os.ReadFile(ruta)
	if string(contenido) != "uno\ndos\n" {
		t.Fatalf("log file must be appended, got %q", contenido)
	}

	if _, err := AbrirSalidaLog(filepath.Join(t.TempDir(), "no", "existe", "x.log"), nil); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestCargarConfiguracion_LogueaConElLoggerConfigurado(t *testing.T) {
	anteriorInfo, anteriorError := InfoLog, ErrorLog
	t.Cleanup(func() { InfoLog, ErrorLog = anteriorInfo, anteriorError })

	var buf bytes.Buffer
	InicializarLogger("debug", "Prueba", &buf)

	ruta := filepath.Join(t.TempDir(), "c.json")
	os.WriteFile(ruta, []byte(`{"PUERTO": 1}`), 0644)
	if _, err := CargarConfiguracion[configPrueba](ruta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	salida := buf.String()
	if !strings.Contains(salida, "Cargando configuración") || !strings.Contains(salida, "modulo=Prueba") {
		t.Fatalf("debug line must go through the configured logger:\n%s", salida)
	}

	buf.Reset()
	InicializarLogger("info", "Prueba", &buf)
	CargarConfiguracion[configPrueba](ruta)
	if strings.Contains(buf.String(), "Cargando configuración") {
		t.Fatalf("debug line must respect the configured level:\n%s", buf.String())
	}
}
