package memoria

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func escribirArchivo(t *testing.T, nombre, contenido string) string {
	t.Helper()
	ruta := filepath.Join(t.TempDir(), nombre)
	if err := os.WriteFile(ruta, []byte(contenido), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return ruta
}

func TestCargarConfig_SinRuta(t *testing.T) {
	config, err := CargarConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config != ConfigPorDefecto() {
		t.Fatalf("expected defaults, got %+v", config)
	}
}

func TestCargarConfig_JSONConservaDefectos(t *testing.T) {
	ruta := escribirArchivo(t, "gm.json", `{"MARCO_INICIAL": 0, "MARCO_FINAL": 15, "LOG_LEVEL": "debug"}`)

	config, err := CargarConfig(ruta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.MarcoInicial != 0 || config.MarcoFinal != 15 || config.LogLevel != "debug" {
		t.Fatalf("file values not applied: %+v", config)
	}
	if config.TamPagina != 512 || config.MaxMemoriaTarea != 4096 || config.ExtensionTarea != ".tsk" {
		t.Fatalf("missing fields must keep defaults: %+v", config)
	}
}

func TestCargarConfig_TOML(t *testing.T) {
	ruta := escribirArchivo(t, "memoria.toml", strings.Join([]string{
		`TAM_PAGINA = 256`,
		`MAX_MEMORIA_TAREA = 2048`,
		`DUMP_FORMATO = "cbor"`,
		`PUERTO_MEMORIA = 9100`,
	}, "\n"))

	config, err := CargarConfig(ruta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.TamPagina != 256 || config.DumpFormato != FormatoCBOR || config.PuertoMemoria != 9100 {
		t.Fatalf("TOML values not applied: %+v", config)
	}
	if p := config.Parametros(); p.MaxPaginasLogicas() != 8 {
		t.Fatalf("expected 8 logical pages, got %d", p.MaxPaginasLogicas())
	}
}

func TestCargarConfig_Errores(t *testing.T) {
	if _, err := CargarConfig(filepath.Join(t.TempDir(), "no-existe.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := CargarConfig(escribirArchivo(t, "roto.json", "{")); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
	if _, err := CargarConfig(escribirArchivo(t, "roto.toml", "TAM_PAGINA = ")); err == nil {
		t.Fatalf("expected error for malformed TOML")
	}
	if _, err := CargarConfig(escribirArchivo(t, "rango.json", `{"MARCO_INICIAL": 10, "MARCO_FINAL": 5}`)); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidar(t *testing.T) {
	casos := map[string]func(*Config){
		"pagina_cero":         func(c *Config) { c.TamPagina = 0 },
		"memoria_no_multiplo": func(c *Config) { c.MaxMemoriaTarea = 1000 },
		"marco_negativo":      func(c *Config) { c.MarcoInicial = -1 },
		"sin_tareas":          func(c *Config) { c.MaxTareas = 0 },
		"formato":             func(c *Config) { c.DumpFormato = "yaml" },
	}

	if err := ConfigPorDefecto().Validar(); err != nil {
		t.Fatalf("defaults must be valid: %v", err)
	}
	for nombre, modificar := range casos {
		config := ConfigPorDefecto()
		modificar(&config)
		if err := config.Validar(); err == nil {
			t.Errorf("%s: expected validation error", nombre)
		}
	}
}
