/*
Package audiostream allows to build and execute pull-based audio pipelines.

Concept

Streams are represented as sequences of buffers. Data is produced by
sources on demand and pulled through a chain of zero or more stages until it
reaches a sink. The pipeline always operates in a "pull" mode: sources yield
buffers only as fast as the sink requests them.

    Source - the origin of signal, a chain of stages wraps it;
    Sink - the consumer which drives the whole chain;

It implies the following constraints:

    Every stage exclusively owns the stage upstream of it;
    The chain is executed sequentially in a single goroutine;
    A buffer is valid until the next pull on the same source.

Samples

Valid sample formats are expressed with the Sample constraint. Integer
formats clip hard: values outside their range cannot be represented. Floating
formats clip soft: the nominal range is [-1, 1], but larger values are still
representable. ToFloat, FromFloat and Convert move values between formats.

Buffers

Buffers are channel-major: one contiguous run of samples per channel. The
producing source owns the backing storage. It may reuse the same storage on
every pull, so downstream stages must copy data they want to keep. A stage may
modify the samples of a borrowed buffer in place before handing it further.

Results

Source.Next returns a Result: a buffer, a sample rate announcement, the end of
stream or a stream error. End of stream and error are terminal and sticky.

Execution

A Sink is driven with Run or RunContext. Cancellation is checked once per
buffer, so the worst case latency is the processing time of one buffer. The
run package executes a sink in its own goroutine.
*/
package audiostream
