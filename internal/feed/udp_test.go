package feed

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUDPServer(t *testing.T) {
	srvConn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)

	s := NewUDPServer("")
	cat := newCatalog()
	defer s.Attach(cat)()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, srvConn) }()

	client, err := net.DialUDP("udp", nil, srvConn.LocalAddr().(*net.UDPAddr))
	require.NoError(t, err)
	defer client.Close()

	reg, err := json.Marshal(RegisterMessage{Type: TypeRegister, ClientID: "shop-1"})
	require.NoError(t, err)
	_, err = client.Write(reg)
	require.NoError(t, err)
	waitFor(t, func() bool { return s.Registry.Len() == 1 })

	// unknown message types are ignored
	_, err = client.Write([]byte(`{"type":"hello","client_id":"x"}`))
	require.NoError(t, err)

	cat.Reload(context.Background())

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 2048)
	n, err := client.Read(buf)
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(buf[:n], &ev))
	assert.Equal(t, TypeCatalogReload, ev.Type)
	assert.Equal(t, uint64(1), ev.Version)
	assert.Equal(t, 1, s.Registry.Len())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("udp server did not stop")
	}
}

func TestUDPServer_PublishBeforeServe(t *testing.T) {
	s := NewUDPServer("")
	s.Publish(Event{Type: TypeCatalogReload})
	assert.Zero(t, s.Registry.Len())
}
