package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"josephlewis.net/lsd/core"
	"josephlewis.net/lsd/core/display"
	"josephlewis.net/lsd/core/duino"
	"josephlewis.net/lsd/core/logger"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to the board and start the message API.",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		os.Stdin.Close()
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		log.Println("Starting event log...")
		appLog, err := configuration.OpenAppLog()
		if err != nil {
			return err
		}
		events := logger.NewJsonLinesLogRecorder(appLog)

		log.Printf("Connecting to the board on %s...", configuration.SerialDevice)
		conn, err := duino.Open(configuration.SerialDevice, configuration.BaudRate)
		if err != nil {
			appLog.Close()
			return err
		}

		setupCtx, cancelSetup := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelSetup()

		board := duino.NewBoard(conn)
		if err := board.Ping(setupCtx); err != nil {
			conn.Close()
			appLog.Close()
			return err
		}

		lcd, err := duino.NewLCD(setupCtx, conn,
			configuration.Hardware.LCDPins,
			configuration.Display.Columns,
			configuration.Display.Rows)
		if err != nil {
			conn.Close()
			appLog.Close()
			return err
		}

		msgBoard, err := display.New(setupCtx, board, lcd, display.Options{
			LEDPin:        configuration.Hardware.LEDPin,
			ButtonPin:     configuration.Hardware.ButtonPin,
			BlinkInterval: configuration.Hardware.BlinkInterval(),
			PollInterval:  configuration.Hardware.ButtonPollInterval(),
			AckText:       configuration.Display.AckText,
			AckHold:       configuration.Display.AckHold(),
		}, events)
		if err != nil {
			conn.Close()
			appLog.Close()
			return err
		}

		server, err := core.NewServer(configuration, msgBoard, events)
		if err != nil {
			conn.Close()
			appLog.Close()
			return err
		}
		server.AddCloser(msgBoard)
		server.AddCloser(conn)
		server.AddCloser(appLog)

		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err)
			}
		}()

		sigs := make(chan os.Signal, 1)

		log.Println("- Starting interrupt handler")
		signal.Notify(sigs, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigs
		log.Printf("Got signal %q, terminating...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server shutdown failed: %s", err)
		}
		log.Print("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
