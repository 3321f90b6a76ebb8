// limpiar_datos borra los datos de prueba: todas las garantías con sus comentarios
// y los archivos de uploads, excepto el logo de la empresa. Usuarios y configuración
// de empresa se conservan.
//
// Uso: go run ./cmd/limpiar_datos [-si]
// Sin -si pide confirmación por consola.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/Garantias-api/internal/application/maintenance"
	"github.com/jhoicas/Garantias-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Garantias-api/internal/infrastructure/storage"
	"github.com/jhoicas/Garantias-api/pkg/config"
	"github.com/jhoicas/Garantias-api/pkg/logger"
)

func main() {
	yes := flag.Bool("si", false, "no pedir confirmación")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if !*yes && !confirm() {
		fmt.Println("Cancelado.")
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	files, err := storage.NewLocalStorage(cfg.Uploads.Dir, cfg.Uploads.PublicPrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("carpeta de uploads")
	}

	reset := maintenance.NewResetUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewCompanyConfigRepository(pool),
		files,
		log,
	)
	out, err := reset.ResetTestData(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("limpiar datos")
	}

	fmt.Println("Datos de prueba eliminados:")
	fmt.Printf("  - Garantías borradas: %d\n", out.Warranties)
	fmt.Printf("  - Comentarios borrados: %d\n", out.Comments)
	fmt.Printf("  - Archivos en uploads borrados: %d\n", out.Files)
	if out.LogoPreserved != "" {
		fmt.Printf("  - Logo conservado: %s\n", out.LogoPreserved)
	}
	fmt.Println("Usuarios y configuración de empresa se mantienen.")
}

func confirm() bool {
	fmt.Print("Se borrarán TODAS las garantías, comentarios y archivos subidos. ¿Continuar? (s/N): ")
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "si", "sí":
		return true
	}
	return false
}
