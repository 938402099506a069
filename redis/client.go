package redis

import (
	"bytes"
	"errors"
	"iobench/data"
	"iobench/index"
	"strings"

	"github.com/tidwall/redcon"
)

var errInvalidArgs = errors.New("invalid arguments")

type cmdHandler func(cli *ResultClient, args [][]byte) (interface{}, error)

var commands = map[string]cmdHandler{
	"quit":   nil,
	"ping":   nil,
	"get":    get,
	"keys":   keys,
	"dbsize": dbsize,
}

// ResultClient 每个连接对应一个客户端
type ResultClient struct {
	server *ResultServer
	index  index.Indexer
}

func execClientCommand(conn redcon.Conn, cmd redcon.Command) {
	command := strings.ToLower(string(cmd.Args[0]))
	cmdFunc, exist := commands[command]
	if !exist {
		conn.WriteError("ERR unsupported command '" + command + "'")
		return
	}

	cli, _ := conn.Context().(*ResultClient)
	switch command {
	case "quit":
		conn.WriteString("OK")
		conn.Close()
	case "ping":
		conn.WriteString("PONG")
	default:
		res, err := cmdFunc(cli, cmd.Args[1:])
		if err != nil {
			conn.WriteError("ERR " + err.Error())
			return
		}
		conn.WriteAny(res)
	}
}

// get 返回试验记录在报告中对应的一行, 不存在时返回 nil
func get(cli *ResultClient, args [][]byte) (interface{}, error) {
	if len(args) != 1 {
		return nil, errInvalidArgs
	}
	record := cli.index.Get(args[0])
	if record == nil {
		return nil, nil
	}
	return strings.Join(data.EncodeCSV(*record), ","), nil
}

// keys 按顺序返回所有以 prefix 开头的试验 key
func keys(cli *ResultClient, args [][]byte) (interface{}, error) {
	if len(args) > 1 {
		return nil, errInvalidArgs
	}
	var prefix []byte
	if len(args) == 1 && string(args[0]) != "*" {
		prefix = bytes.TrimSuffix(args[0], []byte("*"))
	}

	iter := cli.index.Iterator(false)
	defer iter.Close()
	result := make([][]byte, 0)
	for iter.Seek(prefix); iter.Valid(); iter.Next() {
		key := iter.Key()
		if !bytes.HasPrefix(key, prefix) {
			break
		}
		// 迭代器关闭后 key 不再有效, 需要拷贝
		result = append(result, append([]byte(nil), key...))
	}
	return result, nil
}

func dbsize(cli *ResultClient, args [][]byte) (interface{}, error) {
	if len(args) != 0 {
		return nil, errInvalidArgs
	}
	return redcon.SimpleInt(cli.index.Size()), nil
}
