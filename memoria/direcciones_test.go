package memoria

import (
	"strings"
	"testing"
)

// tareaConMarcos interpreta el script y le asigna marcos de un pool nuevo
func tareaConMarcos(t *testing.T, script string, inicio, fin int) *Tarea {
	t.Helper()
	tarea, err := Interpretar("t", strings.NewReader(script), ParametrosPorDefecto())
	if err != nil {
		t.Fatalf("Interpretar failed: %v", err)
	}
	if err := tarea.Finalizar(); err != nil {
		t.Fatalf("Finalizar failed: %v", err)
	}
	pool, _ := NuevoPoolMarcos(inicio, fin)
	marcos, err := pool.Reservar(tarea.TotalPaginas())
	if err != nil {
		t.Fatalf("Reservar failed: %v", err)
	}
	if err := ConstruirTablaPaginas(tarea, marcos); err != nil {
		t.Fatalf("ConstruirTablaPaginas failed: %v", err)
	}
	return tarea
}

func TestTraduccion_EjemploDeReferencia(t *testing.T) {
	tarea := tareaConMarcos(t, "#T=100\nV new 600\n", 40, 127)

	if len(tarea.TablaPaginas) != 3 {
		t.Fatalf("expected 3 page-table entries, got %v", tarea.TablaPaginas)
	}
	for i, want := range []int{40, 41, 42} {
		if tarea.TablaPaginas[i] != want {
			t.Fatalf("expected page table [40 41 42], got %v", tarea.TablaPaginas)
		}
	}

	v, _ := tarea.BuscarVector("V")
	dir := tarea.DireccionLogica(v, 0)
	if dir != 512 {
		t.Fatalf("data must start at the first page after code: expected 512, got %d", dir)
	}
	if tarea.PaginaLogica(dir) != 1 || tarea.Desplazamiento(dir) != 0 {
		t.Fatalf("expected 1:0, got %d:%d", tarea.PaginaLogica(dir), tarea.Desplazamiento(dir))
	}
	if fisica := tarea.DireccionFisica(dir); fisica != 41*512 {
		t.Fatalf("expected physical address 20992, got %d", fisica)
	}
}

func TestTraduccion_CruceDePagina(t *testing.T) {
	tarea := tareaConMarcos(t, "#T=0\nA new 500\nB new 100\n", 10, 20)
	b, _ := tarea.BuscarVector("B")

	// B empieza en 500 (página 0) y su byte 12 cae en 512 (página 1)
	dir := tarea.DireccionLogica(b, 12)
	if dir != 512 || tarea.PaginaLogica(dir) != 1 || tarea.Desplazamiento(dir) != 0 {
		t.Fatalf("expected 512 = 1:0, got %d = %d:%d", dir, tarea.PaginaLogica(dir), tarea.Desplazamiento(dir))
	}
	if fisica := tarea.DireccionFisica(dir); fisica != 11*512 {
		t.Fatalf("expected %d, got %d", 11*512, fisica)
	}
	anterior := tarea.DireccionLogica(b, 11)
	if fisica := tarea.DireccionFisica(anterior); fisica != 10*512+511 {
		t.Fatalf("expected %d, got %d", 10*512+511, fisica)
	}
}

func TestTraduccion_DesplazamientoIgualEnAmbasDirecciones(t *testing.T) {
	tarea := tareaConMarcos(t, "#T=700\nV new 2000\n", 60, 70)
	v, _ := tarea.BuscarVector("V")

	for offset := 0; offset < v.Tamanio; offset += 37 {
		dir := tarea.DireccionLogica(v, offset)
		fisica := tarea.DireccionFisica(dir)
		if fisica%512 != tarea.Desplazamiento(dir) {
			t.Fatalf("offset %d: physical %d and logical %d disagree within the page", offset, fisica, dir)
		}
		if again := tarea.DireccionFisica(tarea.DireccionLogica(v, offset)); again != fisica {
			t.Fatalf("translation is not idempotent: %d != %d", again, fisica)
		}
	}
}

func TestTraduccion_Inyectiva(t *testing.T) {
	tarea := tareaConMarcos(t, "#T=1000\nV new 3000\n", 40, 127)

	vistas := make(map[int]int)
	total := tarea.TotalPaginas() * 512
	for dir := 0; dir < total; dir++ {
		fisica := tarea.DireccionFisica(dir)
		if otra, existe := vistas[fisica]; existe {
			t.Fatalf("logical %d and %d map to the same physical address %d", otra, dir, fisica)
		}
		vistas[fisica] = dir
	}
}

func TestConstruirTablaPaginas_CantidadIncorrecta(t *testing.T) {
	tarea, _ := Interpretar("t", strings.NewReader("#T=10\n"), ParametrosPorDefecto())
	tarea.Finalizar()
	if err := ConstruirTablaPaginas(tarea, []int{1, 2}); err == nil {
		t.Fatalf("expected error when frame count does not match pages")
	}
}

func TestMarco(t *testing.T) {
	tarea := tareaConMarcos(t, "#T=10\n", 7, 9)
	if m, ok := tarea.Marco(0); !ok || m != 7 {
		t.Fatalf("expected frame 7, got %d %v", m, ok)
	}
	if _, ok := tarea.Marco(1); ok {
		t.Fatalf("page 1 is not mapped")
	}
}
