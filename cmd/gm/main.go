package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"golang.org/x/term"

	"github.com/sisoputnfrba/gestor-memoria/memoria"
	"github.com/sisoputnfrba/gestor-memoria/utils"
)

func main() {
	negrita := term.IsTerminal(int(os.Stdout.Fd()))
	os.Exit(ejecutar(os.Args[1:], os.Stdout, os.Stderr, negrita))
}

// ejecutar corre el gestor de memoria y devuelve el código de salida
func ejecutar(args []string, stdout, stderr io.Writer, negrita bool) int {
	flags := flag.NewFlagSet("gm", flag.ContinueOnError)
	flags.SetOutput(stderr)
	rutaConfig := flags.String("config", "", "archivo de configuración (.json o .toml)")
	remoto := flags.String("remoto", "", "ejecutar las tareas en un servidor de memoria (ip:puerto)")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Uso: gm [-config archivo] [-remoto ip:puerto] tarea1 [tarea2 ...]\n")
		fmt.Fprintf(stderr, "Ejemplo: gm -config configs/gm.json tarea1 tarea2\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	config, err := memoria.CargarConfig(*rutaConfig)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	salidaLog, err := utils.AbrirSalidaLog(config.LogFile, os.Stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error abriendo archivo de log: %v\n", err)
		return 1
	}
	defer salidaLog.Close()
	utils.InicializarLogger(config.LogLevel, "GM", salidaLog)

	tareas := flags.Args()
	if len(tareas) == 0 {
		fmt.Fprintf(stdout, "\nProporcione al menos un archivo de instrucciones.\n\n")
		return 1
	}
	if len(tareas) > config.MaxTareas {
		fmt.Fprintf(stdout, "\nProporcione como máximo %d archivos de instrucciones.\n\n", config.MaxTareas)
		return 1
	}

	utils.InfoLog.Info("Gestor de memoria iniciando", "tareas", tareas, "remoto", *remoto)

	fuente := memoria.DirectorioTareas{Dir: config.TareasPath, Extension: config.ExtensionTarea}
	if *remoto != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = ejecutarRemoto(ctx, *remoto, fuente, tareas, stdout, negrita)
	} else {
		err = ejecutarLocal(config, fuente, tareas, stdout, negrita)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout)
	return 0
}
