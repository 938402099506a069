package redis

import (
	"iobench/index"
	"net"
	"sync"

	"github.com/tidwall/redcon"
	"go.uber.org/zap"
)

// ResultServer 以 Redis 协议对外提供已记录试验结果的只读访问
type ResultServer struct {
	index  index.Indexer
	server *redcon.Server
	logger *zap.SugaredLogger
	mu     sync.RWMutex
	conns  int // 当前连接数
}

// NewResultServer 初始化结果服务, 索引的生命周期由调用方负责
func NewResultServer(addr string, indexer index.Indexer, logger *zap.SugaredLogger) *ResultServer {
	svr := &ResultServer{
		index:  indexer,
		logger: logger,
	}
	svr.server = redcon.NewServer(addr, execClientCommand, svr.accept, svr.closed)
	return svr
}

// ListenAndServe 监听初始化时传入的地址并处理连接, 直到 Close 被调用
func (svr *ResultServer) ListenAndServe() error {
	svr.logger.Infow("iobench result server running, ready to accept connections")
	return svr.server.ListenAndServe()
}

// Serve 使用已有的 listener 处理连接
func (svr *ResultServer) Serve(ln net.Listener) error {
	svr.logger.Infow("iobench result server running, ready to accept connections", "addr", ln.Addr().String())
	return svr.server.Serve(ln)
}

// Close 停止监听并关闭所有连接
func (svr *ResultServer) Close() error {
	return svr.server.Close()
}

// Conns 当前的连接数
func (svr *ResultServer) Conns() int {
	svr.mu.RLock()
	defer svr.mu.RUnlock()
	return svr.conns
}

func (svr *ResultServer) accept(conn redcon.Conn) bool {
	cli := &ResultClient{server: svr, index: svr.index}
	svr.mu.Lock()
	svr.conns++
	svr.mu.Unlock()
	conn.SetContext(cli)
	svr.logger.Debugw("client connected", "remote", conn.RemoteAddr())
	return true
}

func (svr *ResultServer) closed(conn redcon.Conn, err error) {
	svr.mu.Lock()
	svr.conns--
	svr.mu.Unlock()
	if err != nil {
		svr.logger.Debugw("client disconnected", "remote", conn.RemoteAddr(), "error", err)
	}
}
