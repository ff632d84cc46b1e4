// Copyright (c) SeqFlow Authors.
// Licensed under the MIT License.

/*
Package seq 提供单遍异步序列的多路复用原语。

# 概述

在数据管道中，一个上游序列（文件、网络流、生成器）往往只能被拉取一次，
而多个下游任务需要各自独立地完整消费它。本包的 Multiplexer 将一个
单遍 Source 扇出给固定数量的消费者：每个逻辑元素只从上游拉取一次，
缓存在共享的滑动窗口中，待所有消费者越过后立即回收。

# 核心接口

  - Source[T] — 懒惰序列契约：Next / Current / Close。
  - Multiplexer[T] — 入口点，校验配置并按需（恰好一次）构建共享引擎。
  - Config — 消费者数量、缓冲上限与回收阈值，支持 YAML 加载。
  - Metrics — 可选的 Prometheus 指标采集。

# 主要能力

  - 精确一次：每个消费者按源顺序恰好收到每个元素一次。
  - 背压：缓冲有界时，领先的消费者等待落后者释放窗口槽位后再继续拉取。
  - 窗口回收：最慢消费者越过的位置立即从窗口剔除并唤醒等待者。
  - 引用计数：最后一个消费者关闭时，恰好一次地关闭上游。

# 使用示例

	mux, err := seq.NewMultiplexer(ctx, src, seq.Config{Consumers: 3, MaxBuffer: 64})
	c, err := mux.Consumer()
	for {
		ok, err := c.Next(ctx)
		if err != nil || !ok {
			break
		}
		handle(c.Current())
	}
	c.Close(ctx)
*/
package seq
