package isfdb

const publicationPage = `<html><head><meta http-equiv="content-type" content="text/html; charset=iso-8859-1"></head><body>
<div id="content">
<div class="ContentBox">
<table><tr class="scan">
<td><a href="https://www.isfdb.org/wiki/images/silver.jpg"><img src="https://www.isfdb.org/wiki/images/silver.jpg" alt="picture"></a></td>
<td class="pubheader"><ul>
<li><b>Publication:</b> The Silver Locusts<sup class="mouseover">?</sup><span class="tooltiptext tooltipnarrow tooltipright">This is a publication record</span></li>
<li><b>Author:</b> <a href="https://www.isfdb.org/cgi-bin/ea.cgi?194">Ray Bradbury</a></li>
<li><b>Date:</b> 1951-00-00</li>
<li><b>ISBN:</b> 0-330-02042-0 [<small>978-0-330-02042-3</small>]</li>
<li><b>Catalog ID:</b> G42</li>
<li><b>Publisher:</b> <a href="https://www.isfdb.org/cgi-bin/publisher.cgi?31">Corgi</a></li>
<li><b>Pub. Series:</b> <a href="https://www.isfdb.org/cgi-bin/pubseries.cgi?112">Corgi SF Collector's Library</a></li>
<li><b>Pub. Series #:</b> 12</li>
<li><b>Price:</b> 2/6</li>
<li><b>Pages:</b> 222</li>
<li><b>Format:</b> pb</li>
<li><b>Type:</b> COLLECTION</li>
<li><b>Cover:</b> <a href="https://www.isfdb.org/cgi-bin/title.cgi?9">The Silver Locusts</a> by <a href="https://www.isfdb.org/cgi-bin/ea.cgi?5">Josh Kirby</a></li>
<li><b>Notes:</b><div class="notes"><ul><li>Data from Locus1</li></ul></div></li>
<li><b>External IDs:</b><ul class="noindent"><li><abbr class="template" title="Online Computer Library Center">OCLC/WorldCat</abbr>: <a href="http://www.worldcat.org/oclc/1234">1234</a></li></ul></li>
<li><b>Container Title:</b> <a href="https://www.isfdb.org/cgi-bin/title.cgi?1475">The Silver Locusts</a></li>
</ul></td>
</tr></table>
</div>
<div class="ContentBox"><h2>Contents</h2><ul><li>7 &#8226; <a href="https://www.isfdb.org/cgi-bin/title.cgi?1475">The Silver Locusts</a> &#8226; collection by Ray Bradbury</li></ul></div>
</div></body></html>`

const publicationNoCoverPage = `<html><body><div id="content">
<div class="ContentBox"><ul>
<li><b>Publication:</b> Dune</li>
<li><b>Editors:</b> <a href="https://www.isfdb.org/cgi-bin/ea.cgi?1">uncredited</a></li>
<li><b>Date:</b> date unknown</li>
<li><b>Type:</b> NOVEL</li>
</ul></div>
</div></body></html>`

// Ü is 0xDC in ISO-8859-1.
const titlePage = "<html><head><meta http-equiv=\"content-type\" content=\"text/html; charset=iso-8859-1\"></head><body>" + `
<div id="content">
<div class="ContentBox"><ul>
<li><b>Title:</b> ` + "\xdc" + `berfall vom achten Planeten</li>
<li><b>Author:</b> <a href="https://www.isfdb.org/cgi-bin/ea.cgi?194">Ray Bradbury</a></li>
<li><b>Date:</b> 1950-05-00</li>
<li><b>Type:</b> COLLECTION</li>
<li><b>Series:</b> <a href="https://www.isfdb.org/cgi-bin/pe.cgi?45706">Martian Stories</a></li>
<li><b>Series Number:</b> 1</li>
<li><b>Language:</b> English</li>
<li><b>Notes:</b> <div class="notes">Fix-up of stories.</div></li>
<li><b>Current Tags:</b> <a href="https://www.isfdb.org/cgi-bin/tag.cgi?1">Mars</a>, <a href="https://www.isfdb.org/cgi-bin/edit/edittags.cgi?1">Add Tags</a></li>
</ul></div>
<div class="ContentBox"><h2>Publications</h2><table>
<tr><td><a href="https://www.isfdb.org/cgi-bin/pl.cgi?262210">The Silver Locusts</a></td></tr>
<tr><td><a href="https://www.isfdb.org/cgi-bin/pl.cgi?3000">The Martian Chronicles</a></td></tr>
<tr><td><a href="https://www.isfdb.org/cgi-bin/pl.cgi?262210">again</a></td></tr>
</table></div>
</div></body></html>`

const titleBreakPage = `<html><body><div id="content"><div class="ContentBox">
<b>Title:</b> Dune<br>
<b>Author:</b> <a href="https://www.isfdb.org/cgi-bin/ea.cgi?1">Frank Herbert</a><br>
<b>Date:</b> 1965-00-00<br>
<b>Type:</b> NOVEL<br>
<b>Length:</b> novel<br>
</div></div></body></html>`

const publicationSearchPage = `<html><body><div id="main"><p>Displaying items 1 to 3</p><table>
<tr class="table0"><th>Title</th><th>Date</th><th>Author/Editor</th><th>Publisher/Pub. Series</th><th>ISBN/Catalog ID</th><th>Price</th></tr>
<tr class="table1"><td><a href="https://www.isfdb.org/cgi-bin/pl.cgi?101">All Flesh Is Grass</a></td><td>1965-00-00</td><td><a href="https://www.isfdb.org/cgi-bin/ea.cgi?1">Clifford D. Simak</a></td><td>Pan</td><td>0330020420</td><td>$4.95</td></tr>
<tr class="table2"><td><a href="https://www.isfdb.org/cgi-bin/pl.cgi?102">All Flesh Is Grass</a></td><td>1966-03-00</td><td><a href="https://www.isfdb.org/cgi-bin/ea.cgi?1">Clifford D. Simak</a></td><td>Pan</td><td>0330020420</td><td>$5.00</td></tr>
<tr class="table1"><td><a href="https://www.isfdb.org/cgi-bin/pl.cgi?103">All Flesh Is Grass</a></td><td>1967-00-00</td><td><a href="https://www.isfdb.org/cgi-bin/ea.cgi?1">Clifford D. Simak</a></td><td>Pan</td><td>0330020420</td><td>$6.00</td></tr>
</table></div></body></html>`

const titleSearchPage = `<html><body><div id="main"><form><table>
<tr><td>1965-00-00</td><td>NOVEL</td><td>English</td><td></td><td><a href="https://www.isfdb.org/cgi-bin/title.cgi?2103">Dune</a></td><td><a href="https://www.isfdb.org/cgi-bin/ea.cgi?1">Frank Herbert</a></td></tr>
<tr><td>1984-00-00</td><td>NOVEL</td><td>English</td><td></td><td><div class="tooltip"><a href="https://www.isfdb.org/cgi-bin/title.cgi?9999">Dune Messiah</a><span class="tooltiptext">x</span></div></td><td><a href="https://www.isfdb.org/cgi-bin/ea.cgi?1">Frank Herbert</a></td></tr>
</table></form></div></body></html>`

const noRecordsPage = `<html><body><div id="main"><h2>No records found</h2></div></body></html>`

const brokenSearchPage = `<html><body><div id="main"><p>The search form has moved.</p></div></body></html>`

const coversPage = `<html><body><div id="main">
<h2>Covers for Dune</h2>
<a href="https://www.isfdb.org/cgi-bin/pl.cgi?1"><img src="https://covers.example/1.jpg"></a>
<a href="https://www.isfdb.org/cgi-bin/pl.cgi?2"><img src="https://covers.example/2.jpg"></a>
<a href="https://www.isfdb.org/cgi-bin/pl.cgi?3"><img src="https://covers.example/3.jpg"></a>
</div></body></html>`

const seriesPage = `<html><body><div id="content"><div class="ContentBox"><ul>
<li><b>Series:</b> Classic-Zyklus <b>Series Record #</b> 45706</li>
<li><b>Sub-series of:</b> <a href="https://www.isfdb.org/cgi-bin/pe.cgi?1">Ren Dhark Universe</a></li>
</ul></div></div></body></html>`

const unknownRecordPage = `<html><body><div id="content"><h3>Unknown publication record: 99999999</h3></div></body></html>`
