package main

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sisoputnfrba/gestor-memoria/memoria"
	"github.com/sisoputnfrba/gestor-memoria/utils"
)

func configTest(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	contenido := fmt.Sprintf(`{"TAREAS_PATH": %q, "LOG_LEVEL": "error"%s}`, filepath.Join("..", "..", "samples"), extra)
	ruta := filepath.Join(dir, "gm.json")
	if err := os.WriteFile(ruta, []byte(contenido), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return ruta
}

func TestEjecutar_Lote(t *testing.T) {
	var stdout, stderr bytes.Buffer
	codigo := ejecutar([]string{"-config", configTest(t, ""), "tarea1", "tarea3", "tarea2", "tarea4"}, &stdout, &stderr, false)
	if codigo != 0 {
		t.Fatalf("expected exit 0, got %d: %s", codigo, stderr.String())
	}
	salida := stdout.String()

	for _, esperado := range []string{
		"- Tarea: tarea1\n",
		"PL 0 (0 a 511) --> PF 40 (20480 a 20991)\n",
		"intentó realizar un acceso inválido a la memoria x[10]",
		"- Tarea: tarea2\n",
		"PL 0 (0 a 511) --> PF 43 (22016 a 22527)\n",
		"La tarea tarea4 excedió el límite de memoria de 4KB.",
	} {
		if !strings.Contains(salida, esperado) {
			t.Errorf("output missing %q\n%s", esperado, salida)
		}
	}
	if strings.Index(salida, "tarea1") > strings.Index(salida, "tarea2") {
		t.Fatalf("reports must follow command-line order")
	}
}

func TestEjecutar_ErroresDeUso(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if codigo := ejecutar([]string{"-config", configTest(t, "")}, &stdout, &stderr, false); codigo != 1 {
		t.Fatalf("expected exit 1 with no tasks, got %d", codigo)
	}
	if !strings.Contains(stdout.String(), "Proporcione al menos un archivo de instrucciones.") {
		t.Fatalf("unexpected output %q", stdout.String())
	}

	stdout.Reset()
	args := []string{"-config", configTest(t, ""), "a", "b", "c", "d", "e"}
	if codigo := ejecutar(args, &stdout, &stderr, false); codigo != 1 {
		t.Fatalf("expected exit 1 with too many tasks, got %d", codigo)
	}
	if !strings.Contains(stdout.String(), "Proporcione como máximo 4 archivos de instrucciones.") {
		t.Fatalf("unexpected output %q", stdout.String())
	}

	if codigo := ejecutar([]string{"-config", "no-existe.json", "t"}, &stdout, &stderr, false); codigo != 1 {
		t.Fatalf("expected exit 1 with missing config, got %d", codigo)
	}
}

func TestEjecutar_TareaInexistenteNoDetieneElLote(t *testing.T) {
	var stdout, stderr bytes.Buffer
	codigo := ejecutar([]string{"-config", configTest(t, ""), "fantasma", "tarea1"}, &stdout, &stderr, false)
	if codigo != 0 {
		t.Fatalf("expected exit 0, got %d", codigo)
	}
	salida := stdout.String()
	if !strings.Contains(salida, "fantasma") || !strings.Contains(salida, "PF 40 ") {
		t.Fatalf("missing task must not consume frames or stop the batch:\n%s", salida)
	}
}

func TestEjecutar_DumpsEHistorial(t *testing.T) {
	dir := t.TempDir()
	extra := fmt.Sprintf(`, "DUMP_PATH": %q, "DUMP_FORMATO": "cbor", "HISTORIAL_PATH": %q`,
		filepath.Join(dir, "dumps"), filepath.Join(dir, "historial.db"))

	var stdout, stderr bytes.Buffer
	if codigo := ejecutar([]string{"-config", configTest(t, extra), "tarea1", "tarea3"}, &stdout, &stderr, false); codigo != 0 {
		t.Fatalf("expected exit 0, got %d: %s", codigo, stderr.String())
	}

	dumps, _ := filepath.Glob(filepath.Join(dir, "dumps", "tarea1-*.cbor"))
	if len(dumps) != 1 {
		t.Fatalf("expected one dump for tarea1, got %v", dumps)
	}
	reporte, err := memoria.LeerDump(dumps[0])
	if err != nil || reporte.PaginasLogicas != 3 {
		t.Fatalf("unexpected dump %+v: %v", reporte, err)
	}

	historial, err := memoria.AbrirHistorial(filepath.Join(dir, "historial.db"))
	if err != nil {
		t.Fatalf("AbrirHistorial failed: %v", err)
	}
	defer historial.Close()
	registros, _ := historial.Consultar()
	if len(registros) != 2 || registros[1].Estado != memoria.EstadoFallida {
		t.Fatalf("unexpected history %+v", registros)
	}
}

// servidorMemoriaFalso atiende MensajeEjecutarTarea con un gestor propio
func servidorMemoriaFalso(t *testing.T) string {
	t.Helper()
	pool, _ := memoria.NuevoPoolMarcos(10, 20)
	gestor := memoria.NuevoGestor(memoria.ParametrosPorDefecto(), pool, memoria.TareasEnMemoria{})

	modulo := utils.NuevoModulo("Memoria")
	modulo.RegistrarHandler(utils.MensajeEjecutarTarea, "default", func(msg *utils.Mensaje) (interface{}, error) {
		datos, _ := utils.DatosMensaje(msg)
		nombre, _ := utils.ExtraerString(datos, "nombre")
		lineas, _ := utils.ExtraerLineas(datos, "lineas")
		tarea, err := gestor.Procesar(nombre, strings.NewReader(strings.Join(lineas, "\n")))
		return memoria.NuevaRespuestaEjecucion(tarea, err), nil
	})

	ts := httptest.NewServer(modulo.ConstruirServidor("127.0.0.1", 0).Handler())
	t.Cleanup(ts.Close)
	return strings.TrimPrefix(ts.URL, "http://")
}

func TestEjecutar_Remoto(t *testing.T) {
	direccion := servidorMemoriaFalso(t)

	var stdout, stderr bytes.Buffer
	args := []string{"-config", configTest(t, ""), "-remoto", direccion, "tarea1", "tarea3"}
	if codigo := ejecutar(args, &stdout, &stderr, false); codigo != 0 {
		t.Fatalf("expected exit 0, got %d: %s", codigo, stderr.String())
	}
	salida := stdout.String()
	if !strings.Contains(salida, "PL 0 (0 a 511) --> PF 10 (5120 a 5631)\n") {
		t.Fatalf("report must use the server's frames:\n%s", salida)
	}
	if !strings.Contains(salida, "x[10]") {
		t.Fatalf("server-side error must be printed:\n%s", salida)
	}
}

func TestEjecutar_RemotoSinServidor(t *testing.T) {
	ts := httptest.NewServer(nil)
	direccion := strings.TrimPrefix(ts.URL, "http://")
	ts.Close()

	var stdout, stderr bytes.Buffer
	if codigo := ejecutar([]string{"-config", configTest(t, ""), "-remoto", direccion, "tarea1"}, &stdout, &stderr, false); codigo != 1 {
		t.Fatalf("expected exit 1 without server, got %d", codigo)
	}
}
