package xsampling

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DynamicSampler 可热更新的采样器
//
// 持有一个可原子替换的委托采样器，供配置热加载场景使用：
// 追踪管线持有 DynamicSampler，配置变更时 Store 新解析出的
// 采样器即可，决策路径上无锁读取当前委托。
type DynamicSampler struct {
	delegate atomic.Pointer[Sampler]
}

// NewDynamicSampler 创建可热更新采样器
//
// initial 为初始委托采样器，为 nil 时返回 ErrNilSampler。
func NewDynamicSampler(initial Sampler) (*DynamicSampler, error) {
	if initial == nil {
		return nil, ErrNilSampler
	}
	d := &DynamicSampler{}
	d.delegate.Store(&initial)
	return d, nil
}

func (d *DynamicSampler) ShouldSample(ctx context.Context, p Params) Decision {
	return (*d.delegate.Load()).ShouldSample(ctx, p)
}

// Store 原子替换委托采样器
//
// nil 采样器被忽略：热更新失败时保留旧策略比清空策略安全。
func (d *DynamicSampler) Store(s Sampler) {
	if s == nil {
		return
	}
	d.delegate.Store(&s)
}

// Load 返回当前委托采样器
func (d *DynamicSampler) Load() Sampler {
	return *d.delegate.Load()
}

// WatchCallback 配置重载回调函数
//
// 重载成功时 cfg 为新配置、err 为 nil；重载失败时 err 非 nil，
// 此时 DynamicSampler 保持旧策略不变。
type WatchCallback func(cfg Config, err error)

// Watcher 采样配置文件监视器
//
// 监控配置文件变更，重新加载并解析后原子替换 DynamicSampler 的委托。
// 加载或解析失败只通过回调上报，绝不让监视循环退出——
// 坏配置不应使正在运行的追踪管线失去采样策略。
type Watcher struct {
	path     string
	target   *DynamicSampler
	callback WatchCallback
	watcher  *fsnotify.Watcher
	debounce time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	running  bool
	timer    *time.Timer // debounce 定时器，Stop() 时需要取消
}

// WatchOption 监视器配置选项
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
}

func defaultWatchOptions() *watchOptions {
	return &watchOptions{
		debounce: 100 * time.Millisecond, // 默认防抖时间
	}
}

// WithDebounce 设置防抖时间
//
// 在指定时间内的多次变更只触发一次重载。默认 100ms。
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		o.debounce = d
	}
}

// WatchConfig 创建采样配置监视器
//
// path 指向 LoadConfig 支持的配置文件，target 是要热更新的
// DynamicSampler，callback 可为 nil（不关心重载结果时）。
// 返回的 Watcher 需要调用 Start/StartAsync 开始监视，Stop 停止。
//
// 示例：
//
//	cfg, _ := xsampling.LoadConfig("/etc/app/sampling.yaml")
//	sampler, _ := xsampling.Resolve(cfg)
//	dyn, _ := xsampling.NewDynamicSampler(sampler)
//	w, err := xsampling.WatchConfig("/etc/app/sampling.yaml", dyn, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Stop()
//	w.StartAsync()
func WatchConfig(path string, target *DynamicSampler, callback WatchCallback, opts ...WatchOption) (*Watcher, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if target == nil {
		return nil, ErrNilSampler
	}
	if _, err := detectFormat(path); err != nil {
		return nil, err
	}

	options := defaultWatchOptions()
	for _, opt := range opts {
		opt(options)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xsampling: failed to create watcher: %w", err)
	}

	// 监视配置文件所在目录（而非文件本身）
	// 因为编辑器保存文件时可能先删除再创建，直接监视文件会丢失事件
	dir := filepath.Dir(path)
	if err := fsWatcher.Add(dir); err != nil {
		closeErr := fsWatcher.Close()
		return nil, errors.Join(
			fmt.Errorf("xsampling: failed to watch directory %s: %w", dir, err),
			closeErr,
		)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		path:     path,
		target:   target,
		callback: callback,
		watcher:  fsWatcher,
		debounce: options.debounce,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start 启动监视
//
// 此方法会阻塞，通常应在 goroutine 中调用。
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.run()
}

// StartAsync 异步启动监视
//
// 在后台 goroutine 中运行，立即返回。
// 先设置 running 标志再启动 goroutine，避免与 Stop() 的竞态。
func (w *Watcher) StartAsync() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.run()
}

// Stop 停止监视
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	// 停止 debounce 定时器，防止 Stop 后仍触发重载
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}

	w.cancel()
	w.running = false
	return w.watcher.Close()
}

// run 运行监视循环
func (w *Watcher) run() {
	filename := filepath.Base(w.path)

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event, filename)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.notify(Config{}, fmt.Errorf("xsampling: watch error: %w", err))
		}
	}
}

// handleEvent 处理文件系统事件
func (w *Watcher) handleEvent(event fsnotify.Event, filename string) {
	// 只处理目标配置文件的事件
	if filepath.Base(event.Name) != filename {
		return
	}

	// 处理可能表示配置更新的事件
	// - Write: 直接修改
	// - Create: 新建文件（部分编辑器）
	// - Rename: 原子写入模式（vim/emacs 写临时文件后 rename）
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	// 防抖处理：重置计时器
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.ctx.Done():
			return
		default:
		}
		w.reload()
	})
}

// reload 重新加载配置并替换采样器
func (w *Watcher) reload() {
	cfg, err := LoadConfig(w.path)
	if err != nil {
		w.notify(Config{}, err)
		return
	}

	sampler, err := Resolve(cfg)
	if err != nil {
		w.notify(Config{}, err)
		return
	}

	w.target.Store(sampler)
	w.notify(cfg, nil)
}

// notify 调用回调通知重载结果
func (w *Watcher) notify(cfg Config, err error) {
	if w.callback != nil {
		w.callback(cfg, err)
	}
}

// 确保实现了接口
var _ Sampler = (*DynamicSampler)(nil)
