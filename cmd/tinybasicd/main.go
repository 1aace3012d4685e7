// Command tinybasicd is the networked host: one engine per WebSocket
// connection, bearer-token session auth, each session driven by repeated
// calls to Engine.Next from its own goroutine. Per spec.md §5, concurrency
// lives entirely at this layer -- each engine remains exactly as
// single-threaded as a local session.
package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/crypto/bcrypt"

	"github.com/nmiell/tinybasic/internal/adapter"
	"github.com/nmiell/tinybasic/internal/engine"
	"github.com/nmiell/tinybasic/internal/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// sessionClaims is the JWT payload a client presents at connect time.
type sessionClaims struct {
	jwt.RegisteredClaims
}

type server struct {
	secret     []byte
	secretHash []byte
	store      *storage.Store
}

func newServer(secret string, store *storage.Store) (*server, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &server{secret: []byte(secret), secretHash: hash, store: store}, nil
}

func (s *server) mintToken(sessionID string) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *server) verifyToken(raw string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *server) handleConnect(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		secret := r.URL.Query().Get("secret")
		if bcrypt.CompareHashAndPassword(s.secretHash, []byte(secret)) != nil {
			conn.WriteMessage(websocket.TextMessage, []byte("missing or wrong shared secret\n"))
			conn.Close()
			return
		}
		sessionID := uuid.NewString()
		minted, err := s.mintToken(sessionID)
		if err != nil {
			conn.Close()
			return
		}
		conn.WriteMessage(websocket.TextMessage, []byte("token:"+minted+"\n"))
	} else if _, err := s.verifyToken(token); err != nil {
		conn.WriteMessage(websocket.TextMessage, []byte("invalid session token\n"))
		conn.Close()
		return
	}

	go s.runSession(conn)
}

func (s *server) runSession(conn *websocket.Conn) {
	ws := adapter.NewWebSocket(conn)
	eng := engine.New(ws, s.store, time.Now().UnixNano())
	for !ws.Terminated() {
		eng.Next()
	}
}

func main() {
	addr := os.Getenv("TINYBASICD_ADDR")
	if addr == "" {
		addr = ":4510"
	}
	secret := os.Getenv("TINYBASICD_SECRET")
	if secret == "" {
		secret = uuid.NewString()
		log.Printf("TINYBASICD_SECRET not set; generated an ephemeral secret for this run")
	}

	dir := os.Getenv("TINYBASICD_DATA")
	if dir == "" {
		dir = "/var/lib/tinybasicd/programs"
	}
	text, err := storage.NewTextStore(dir)
	if err != nil {
		log.Fatalf("tinybasicd: %v", err)
	}
	catalog, err := storage.OpenCatalog(dir + "/catalog.db")
	if err != nil {
		catalog = nil
	}

	srv, err := newServer(secret, &storage.Store{Text: text, Catalog: catalog})
	if err != nil {
		log.Fatalf("tinybasicd: %v", err)
	}

	http.HandleFunc("/session", srv.handleConnect)
	log.Printf("tinybasicd listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, nil))
}
