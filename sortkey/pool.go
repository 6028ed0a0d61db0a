package sortkey

import (
	"context"

	pool "github.com/jolestar/go-commons-pool"
	"golang.org/x/text/collate"
)

// Collation buffers are short-lived objects, needed for every key. To avoid
// multiple allocation of their internal arrays we will pool them.
type bufferPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

func newBufferPool() *bufferPool {
	bp := &bufferPool{ctx: context.Background()}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return &collate.Buffer{}, nil
		})
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	bp.opool = pool.NewObjectPool(bp.ctx, factory, config)
	return bp
}

func (bp *bufferPool) borrow() *collate.Buffer {
	o, err := bp.opool.BorrowObject(bp.ctx)
	if err != nil {
		tracer().Errorf("sortkey: cannot borrow collation buffer: %v", err)
		return &collate.Buffer{}
	}
	return o.(*collate.Buffer)
}

// release clears buf and puts it back into the pool.
func (bp *bufferPool) release(buf *collate.Buffer) {
	buf.Reset()
	_ = bp.opool.ReturnObject(bp.ctx, buf)
}
