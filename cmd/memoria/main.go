package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sisoputnfrba/gestor-memoria/memoria"
	"github.com/sisoputnfrba/gestor-memoria/utils"
)

func main() {
	// Verificar argumentos
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Uso: %s <archivo_configuracion>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Ejemplo: %s configs/memoria-config.json\n", os.Args[0])
		os.Exit(1)
	}

	// Inicializar logger ANTES de usarlo
	utils.InicializarLogger("INFO", "Memoria", os.Stdout)
	utils.InfoLog.Info("Iniciando módulo Memoria")

	rutaConfig := os.Args[1]
	config, err := memoria.CargarConfig(rutaConfig)
	if err != nil {
		utils.ErrorLog.Error("Error cargando configuración", "config_path", rutaConfig, "error", err)
		os.Exit(1)
	}

	// Actualizar logger con configuración del archivo
	salidaLog, err := utils.AbrirSalidaLog(config.LogFile, os.Stdout)
	if err != nil {
		utils.ErrorLog.Error("No se pudo abrir el archivo de log", "archivo", config.LogFile, "error", err)
		os.Exit(1)
	}
	defer salidaLog.Close()
	utils.InicializarLogger(config.LogLevel, "Memoria", salidaLog)
	utils.InfoLog.Info("Configuración cargada", "nivel_log", config.LogLevel, "config_path", rutaConfig)

	servidor, err := nuevoServidorMemoria(config)
	if err != nil {
		utils.ErrorLog.Error("Error inicializando memoria", "error", err)
		os.Exit(1)
	}
	defer servidor.cerrar()

	modulo := utils.NuevoModulo("Memoria")
	servidor.registrarHandlers(modulo)
	modulo.IniciarServidor(config.IPMemoria, config.PuertoMemoria)

	utils.InfoLog.Info("Memoria inicializada correctamente",
		"tam_pagina", config.TamPagina,
		"marcos", fmt.Sprintf("%d-%d", config.MarcoInicial, config.MarcoFinal))

	// Mantener el programa corriendo hasta recibir una señal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	utils.InfoLog.Info("Cerrando módulo Memoria")
	ctxCierre, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := modulo.Server.Shutdown(ctxCierre); err != nil {
		utils.ErrorLog.Error("Error cerrando servidor HTTP", "error", err)
	}
}
