package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"time"

	log "github.com/sirupsen/logrus"

	"storefront/internal/feed"
)

const maxBackoff = 30 * time.Second

func main() {
	addr := flag.String("addr", "127.0.0.1:7070", "TCP feed address")
	raw := flag.Bool("raw", false, "print events as received")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	backoff := time.Second
	for ctx.Err() == nil {
		connected, err := run(ctx, *addr, *raw)
		if ctx.Err() != nil {
			return
		}
		if connected {
			backoff = time.Second
		}
		log.Warnf("[sync-client] disconnected: %v (retry in %s)", err, backoff)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

// run tails one connection. connected reports whether the dial succeeded.
func run(ctx context.Context, addr string, raw bool) (connected bool, err error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()
	stopClose := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stopClose()

	log.Infof("[sync-client] connected to %s", addr)

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		line := sc.Bytes()
		if raw {
			fmt.Println(string(line))
			continue
		}

		var ev feed.Event
		if err := json.Unmarshal(line, &ev); err != nil {
			fmt.Println(string(line))
			continue
		}
		switch ev.Type {
		case feed.TypeWelcome:
			fmt.Printf("connected: catalog v%d, %d products, %d subscribers\n", ev.Version, ev.Products, ev.Clients)
		case feed.TypeCatalogReload:
			fmt.Printf("%s catalog reloaded: v%d, %d products\n", ev.At.Local().Format(time.TimeOnly), ev.Version, ev.Products)
		default:
			fmt.Println(string(line))
		}
	}
	if err := sc.Err(); err != nil {
		return true, err
	}
	return true, fmt.Errorf("server closed the connection")
}
