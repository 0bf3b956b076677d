/*
Package sift implements instance filters used to prepare datasets for
supervised learning.

Datasets

A dataset is an ordered sequence of rows sharing one schema. The schema lists
the attributes of each row, numeric, nominal or date, and designates one of
them as the class attribute. Nominal values are stored as the position of
their label, dates as milliseconds since the Unix epoch. Any value can be
missing.

Datasets are read from and written to JSON lines, one row per line, either
as an array of values in schema order or as an object keyed by attribute name.

	[5.1, 3.5, "setosa"]
	{"sepal_length": 5.1, "sepal_width": 3.5, "species": "setosa"}

Filters

Three filters are available:

ROS, random oversampling, duplicates random rows of the least frequent class
until it reaches a percentage of the most frequent one.

ENN, edited nearest neighbor, removes the rows whose class is outvoted among
their k nearest neighbors.

RemoveDuplicates separates the first occurrence of each row from the later
ones and returns either of them.

The batch protocol

Every filter follows the same protocol. Once the input format is set, rows
are fed with Input and buffered. BatchFinished runs the algorithm over the
buffered rows, and the result is collected with Output, one row at a time.
The algorithm only runs on the first batch: every later batch is passed
through unchanged.

	f, err := sift.NewENN(3)
	...
	out, err := sift.Use(f, ds)

Filters can be chained with a pipeline, each stage consuming the whole output
of the previous one.

	p := sift.NewPipeline(enn, sift.NewRemoveDuplicates(false, true))
	out, err := p.Run(ctx, ds)
*/
package sift
